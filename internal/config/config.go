package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv  string
	AppHost string
	AppPort string

	DBDriver  string
	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
	DBPass    string
	DBSSLMode string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs int

	JWTSecret        string
	JWTSecretRefresh string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	MailHost string
	MailPort string
	MailUser string
	MailPass string
	MailFrom string

	UploadDir     string
	PublicBaseURL string
	FrontendURL   string

	LogLevel        string
	LogFormat       string
	DisplayTimezone string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logrus.WithField("key", k).Warn("config: not an integer, using default")
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := time.ParseDuration(v); err == nil {
			return n
		}
		logrus.WithField("key", k).Warn("config: not a duration, using default")
	}
	return d
}

// Load reads an optional .env file, then the process environment.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("config: .env not loaded")
	}

	c := &Config{
		AppEnv:  getenv("APP_ENV", "development"),
		AppHost: getenv("APP_HOST", "0.0.0.0"),
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:  strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBHost:    getenv("DB_HOST", "mysql"),
		DBPort:    getenv("DB_PORT", "3306"),
		DBName:    getenv("DB_NAME", "asset_approval"),
		DBUser:    getenv("DB_USER", "asset"),
		DBPass:    getenv("DB_PASS", "asset"),
		DBSSLMode: getenv("DB_SSLMODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTSecretRefresh: os.Getenv("JWT_SECRET_REFRESH"),
		JWTAccessTTL:     getduration("JWT_ACCESS_TTL", time.Hour),
		JWTRefreshTTL:    getduration("JWT_REFRESH_TTL", 24*time.Hour),

		MailHost: getenv("MAIL_HOST", "localhost"),
		MailPort: getenv("MAIL_PORT", "587"),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getenv("MAIL_FROM", "no-reply@localhost"),

		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:3000"),

		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       strings.ToLower(os.Getenv("LOG_FORMAT")),
		DisplayTimezone: getenv("DISPLAY_TIMEZONE", "Asia/Jakarta"),
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
		if c.IsDevelopment() {
			c.LogFormat = "text"
		}
	}
	return c
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
		if c.DBHost == "" || c.DBPort == "" || c.DBName == "" || c.DBUser == "" {
			return errors.New("missing DB config (DB_HOST/PORT/NAME/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.DBPort); err != nil {
			return fmt.Errorf("invalid DB_PORT %q: %w", c.DBPort, err)
		}
	case "sqlite":
		if c.DBName == "" {
			return errors.New("missing DB_NAME (sqlite file)")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" || c.JWTSecretRefresh == "" {
		return errors.New("missing JWT_SECRET/JWT_SECRET_REFRESH")
	}
	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return nil
}

func (c *Config) Addr() string { return net.JoinHostPort(c.AppHost, c.AppPort) }

func (c *Config) dbAddr() string { return net.JoinHostPort(c.DBHost, c.DBPort) }

// DSN builds the connection string for DBDriver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode)
	case "sqlite":
		return c.DBName
	default:
		// parseTime needed for DATETIME
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			c.DBUser, c.DBPass, c.dbAddr(), c.DBName)
	}
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}
