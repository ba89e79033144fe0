package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/testmaker/quizapi/internal/adapters/repository/gormstore"
)

func newMigrateCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the quiz and user tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*profile)
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), &cfg.Database, logger)
			if err != nil {
				return err
			}

			defer func() {
				if closeErr := gormstore.Close(db); closeErr != nil {
					logger.Error("closing database", slog.Any("error", closeErr))
				}
			}()

			if err := gormstore.AutoMigrate(cmd.Context(), db); err != nil {
				return err
			}

			logger.Info("migrations applied", slog.String("driver", cfg.Database.Driver))

			return nil
		},
	}
}
