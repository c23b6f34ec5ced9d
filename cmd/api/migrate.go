package main

import (
	"fmt"

	"asset-approval-backend/internal/adapter/repository/gormrepo"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		gdb, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(gdb)

		l.WithField("driver", cfg.DBDriver).Info("running migrations")
		if err := gormrepo.AutoMigrate(gdb); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		l.Info("migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
