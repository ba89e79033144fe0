package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/testmaker/quizapi/internal/app"
	"github.com/testmaker/quizapi/internal/platform/config"
)

func newSeedCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the fallback author and sample quizzes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*profile)
			if err != nil {
				return err
			}

			if cfg.Database.Driver == config.DriverMemory {
				logger.Warn("seeding the memory driver only lasts for this process")
			}

			st, err := openStores(cmd.Context(), &cfg.Database, false, logger)
			if err != nil {
				return err
			}

			defer func() {
				if closeErr := st.close(); closeErr != nil {
					logger.Error("closing store", slog.Any("error", closeErr))
				}
			}()

			return runSeeder(cmd.Context(), cfg, st, logger)
		},
	}
}

func runSeeder(ctx context.Context, cfg *config.Config, st *stores, logger *slog.Logger) error {
	result, err := app.NewSeeder(app.SeederConfig{
		Users:         st.users,
		Quizzes:       st.quizzes,
		AuthorName:    cfg.Quiz.DefaultAuthor,
		SampleQuizzes: cfg.Quiz.SampleQuizzes,
		Logger:        logger,
	}).Seed(ctx)
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		slog.String("author_id", result.AuthorID),
		slog.Bool("author_created", result.AuthorCreated),
		slog.Int("quizzes_created", result.QuizzesCreated),
	)

	return nil
}
