package main

import (
	"context"
	"errors"
	"fmt"

	"asset-approval-backend/internal/adapter/repository/gormrepo"
	"asset-approval-backend/internal/domain/user"
	"asset-approval-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const seedPassword = "123456"

// seedUsers holds one active account per role.
var seedUsers = []user.User{
	{FirstName: "Staff", Email: "staff@example.com", Role: user.RoleStaff},
	{FirstName: "GA", Email: "ga@example.com", Role: user.RoleGA},
	{FirstName: "Coordinator", Email: "coordinator@example.com", Role: user.RoleCoordinator},
	{FirstName: "Lead", Email: "lead@example.com", Role: user.RoleLead},
	{FirstName: "Manager", Email: "manager@example.com", Role: user.RoleManager},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default accounts (existing emails are skipped)",
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

		n, err := seed(cmd.Context(), gormrepo.NewUserRepository(gdb), logrus.NewEntry(l))
		if err != nil {
			return err
		}
		l.WithField("created", n).Info("seeding complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

func seed(ctx context.Context, repo seedRepository, log *logrus.Entry) (int, error) {
	hash, err := user.HashPassword(seedPassword)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, tmpl := range seedUsers {
		_, err := repo.FindByEmail(ctx, tmpl.Email)
		if err == nil {
			log.WithField("email", tmpl.Email).Debug("seed: user exists, skipped")
			continue
		}
		if !errors.Is(err, user.ErrNotFound) {
			return created, fmt.Errorf("seed %s: %w", tmpl.Email, err)
		}
		u := tmpl
		u.ID = id.New()
		u.Password = hash
		u.IsActive = true
		if err := repo.Create(ctx, &u); err != nil {
			return created, fmt.Errorf("seed %s: %w", tmpl.Email, err)
		}
		created++
	}
	return created, nil
}
