package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"campusevents/internal/config"
	"campusevents/internal/infrastructure/database"
	"campusevents/internal/infrastructure/logging"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := postgresConfig()
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logging.New(cfg.LogLevel))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (one step by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			cfg, err := postgresConfig()
			if err != nil {
				return err
			}
			return database.RollbackMigrations(cfg.DatabaseURL, cfg.MigrationsPath, steps, logging.New(cfg.LogLevel))
		},
	})
	return cmd
}

func postgresConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != config.DriverPostgres {
		return nil, errors.New("migrations only apply to STORE_DRIVER=postgres")
	}
	return cfg, nil
}
