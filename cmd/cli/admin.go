package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/infrastructure/auth"
	"github.com/iho/goexpense/internal/infrastructure/config"
	"github.com/iho/goexpense/internal/infrastructure/logger"
	"github.com/iho/goexpense/internal/infrastructure/postgres"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token operations",
	}

	var email string
	var ttl time.Duration
	issue := &cobra.Command{
		Use:   "issue USER_ID",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			tok, err := issueToken(cfg.JWTSecret, args[0], email, ttl, cfg.JWTExpiration)
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	issue.Flags().StringVar(&email, "email", "", "Email claim")
	issue.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRATION)")

	cmd.AddCommand(issue)
	return cmd
}

func issueToken(secret, userID, email string, ttl, fallback time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	if ttl <= 0 {
		ttl = fallback
	}

	return auth.NewJWTManager(secret, ttl).Generate(&domain.User{ID: userID, Email: email})
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations using DATABASE_URL",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lg := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, os.Stderr)
			return postgres.RunMigrations(cfg.DatabaseURL, lg)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lg := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, os.Stderr)
			return postgres.RunMigrationsDown(cfg.DatabaseURL, lg)
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}
