package main

import (
	"fmt"
	"os"

	"asset-approval-backend/internal/config"
	"asset-approval-backend/internal/infrastructure/db"
	"asset-approval-backend/internal/infrastructure/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const serviceName = "asset-approval-backend"

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Asset request and approval API",
	Long: `Backend for asset requests: users, categories, assets, uploads
and multi-signer approvals with an append-only history.`,
	SilenceUsage: true,
}

// Execute runs the root command; main calls it once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "dotenv files to load before the environment (default .env)")
}

// bootstrap loads config and installs the process logger.
func bootstrap(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	cfg := config.Load(files...)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	l := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
		Env:     cfg.AppEnv,
	})
	logger.Install(l)
	return cfg, l, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return gdb, nil
}

func closeDatabase(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
