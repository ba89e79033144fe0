package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/testmaker/quizapi/internal/platform/config"
	"github.com/testmaker/quizapi/internal/platform/logging"
)

const defaultProfile = "local"

func newRootCmd() *cobra.Command {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = defaultProfile
	}

	cmd := &cobra.Command{
		Use:           "quizapi",
		Short:         "Quiz authoring API",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&profile, "profile", "p", profile,
		"configuration profile, loads configs/<profile>.yaml (env APP_ENVIRONMENT)")

	cmd.AddCommand(
		newServeCmd(&profile),
		newMigrateCmd(&profile),
		newSeedCmd(&profile),
	)

	return cmd
}

// loadConfig loads and validates the profile's configuration, then installs
// the process logger. Configuration errors fail fast.
func loadConfig(profile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	return cfg, logger, nil
}
