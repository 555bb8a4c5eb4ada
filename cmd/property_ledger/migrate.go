package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/property_ledger/internal/platform/config"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return migrateUp(slog.New(slog.NewTextHandler(os.Stdout, nil)), cfg)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			return withMigrator(logger, cfg, func(m *migrate.Migrate) error {
				return m.Steps(-steps)
			})
		},
	}
	down.Flags().Int("steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func migrateUp(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	return withMigrator(logger, cfg, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// withMigrator opens a database/sql connection through the pgx stdlib
// driver, runs fn against a migrate instance and closes everything.
func withMigrator(logger *slog.Logger, cfg *config.Config, fn func(m *migrate.Migrate) error) error {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	runErr := fn(m)
	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", runErr)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(runErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
