package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadp "asset-approval-backend/internal/adapter/http"
	"asset-approval-backend/internal/adapter/mail"
	"asset-approval-backend/internal/adapter/middleware"
	"asset-approval-backend/internal/adapter/repository/gormrepo"
	"asset-approval-backend/internal/adapter/storage"
	"asset-approval-backend/internal/config"
	"asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/infrastructure/cache"
	"asset-approval-backend/internal/infrastructure/metrics"
	"asset-approval-backend/internal/infrastructure/token"
	ucApproval "asset-approval-backend/internal/usecase/approval"
	ucAsset "asset-approval-backend/internal/usecase/asset"
	ucAuth "asset-approval-backend/internal/usecase/auth"
	ucCategory "asset-approval-backend/internal/usecase/category"
	ucHistory "asset-approval-backend/internal/usecase/history"
	ucUpload "asset-approval-backend/internal/usecase/upload"
	ucUser "asset-approval-backend/internal/usecase/user"
	"asset-approval-backend/pkg/timefmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		log := logrus.NewEntry(l)

		gdb, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(gdb)
		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := gormrepo.AutoMigrate(gdb); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}

		m := metrics.New()
		m.WatchDB(sqlDB, cfg.DBName)

		var rdb redis.Cmdable
		if cfg.RedisAddr != "" {
			client, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			if err != nil {
				return err
			}
			defer client.Close()
			rdb = client
		} else {
			log.Warn("REDIS_ADDR not set, idempotency keys are ignored")
		}

		mailer, err := mail.New(mail.Config{
			Host: cfg.MailHost,
			Port: cfg.MailPort,
			User: cfg.MailUser,
			Pass: cfg.MailPass,
			From: cfg.MailFrom,
		})
		if err != nil {
			return err
		}
		store, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return err
		}

		f := timefmt.New(cfg.DisplayTimezone)
		tokens := token.NewManager(cfg.JWTSecret, cfg.JWTSecretRefresh, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

		users := gormrepo.NewUserRepository(gdb)
		categories := gormrepo.NewCategoryRepository(gdb)

		approvals := ucApproval.NewUsecase(gormrepo.NewApprovalRepository(gdb), users, gormrepo.NewGormUoW(gdb), f).
			WithLogger(log.WithField("component", "approval")).
			WithTransitionObserver(func(from, to approval.Status) {
				m.ObserveTransition(string(from), string(to))
			})

		h := httpadp.Handlers{
			Health:     httpadp.NewHandler(sqlDB),
			Auth:       httpadp.NewAuthHandler(ucAuth.NewUsecase(users, tokens)),
			Users:      httpadp.NewUserHandler(ucUser.NewUsecase(users, mailer, f, strings.TrimRight(cfg.FrontendURL, "/")+"/login")),
			Approvals:  httpadp.NewApprovalHandler(approvals),
			Categories: httpadp.NewCategoryHandler(ucCategory.NewUsecase(categories, f)),
			Assets:     httpadp.NewAssetHandler(ucAsset.NewUsecase(gormrepo.NewAssetRepository(gdb), categories, f)),
			Histories:  httpadp.NewHistoryHandler(ucHistory.NewUsecase(gormrepo.NewHistoryRepository(gdb), f)),
			Uploads:    httpadp.NewUploadHandler(ucUpload.NewUsecase(store, gormrepo.NewFileRepository(gdb))),
			Mail:       httpadp.NewMailHandler(mailer),
		}

		e := newEcho(cfg, log, m)
		httpadp.Register(e, h, httpadp.RouteOptions{
			Tokens:         tokens,
			Redis:          rdb,
			IdempotencyTTL: cfg.IdempotencyTTL(),
			Metrics:        m.Handler(),
			MailPreview:    cfg.IsDevelopment(),
		})

		return run(e, cfg.Addr(), log)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "run migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func newEcho(cfg *config.Config, log *logrus.Entry, obs middleware.RequestObserver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.NewErrorHandler(log)

	origins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" && cfg.FrontendURL != origins[0] {
		origins = append(origins, cfg.FrontendURL)
	}
	e.Use(
		echomw.Recover(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     origins,
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
				echo.HeaderAuthorization, "Idempotency-Key", "X-Trace-Id",
			},
			ExposeHeaders: []string{"X-Trace-Id", "Idempotent-Replayed"},
		}),
		echomw.BodyLimit("10M"),
		middleware.TraceID(),
		middleware.RequestLogger(log, obs),
	)
	e.Static(storage.PublicPrefix, cfg.UploadDir)
	return e
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(e *echo.Echo, addr string, log *logrus.Entry) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
