package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/testmaker/quizapi/internal/adapters/cache/rediscache"
	"github.com/testmaker/quizapi/internal/adapters/http"
	"github.com/testmaker/quizapi/internal/adapters/http/handlers"
	"github.com/testmaker/quizapi/internal/app"
	"github.com/testmaker/quizapi/internal/platform/telemetry"
	"github.com/testmaker/quizapi/internal/ports"
)

func newServeCmd(profile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *profile)
		},
	}
}

//nolint:funlen // linear wiring of every component
func runServe(ctx context.Context, profile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Configuration and logging (fail fast)
	cfg, logger, err := loadConfig(profile)
	if err != nil {
		return err
	}

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("driver", cfg.Database.Driver),
	)

	// 2. Telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 3. Entity store
	st, err := openStores(ctx, &cfg.Database, false, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := st.close(); closeErr != nil {
			logger.Error("closing store", slog.Any("error", closeErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(st.health); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 4. Optional read-through cache; its outage only degrades readiness
	quizzes := st.quizzes

	if cfg.Cache.Enabled {
		client := rediscache.NewClient(rediscache.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})

		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				logger.Error("closing cache client", slog.Any("error", closeErr))
			}
		}()

		quizzes = rediscache.NewQuizCache(quizzes, client, cfg.Cache.TTL, logger)

		if err := healthRegistry.RegisterOptional(rediscache.NewHealthChecker(client)); err != nil {
			return fmt.Errorf("registering cache health check: %w", err)
		}

		logger.Info("quiz cache enabled", slog.String("addr", cfg.Cache.Addr), slog.Duration("ttl", cfg.Cache.TTL))
	}

	// 5. Application services
	if cfg.Database.SeedOnStart {
		if err := runSeeder(ctx, cfg, &stores{quizzes: quizzes, users: st.users}, logger); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	metrics := telemetry.NewQuizMetrics()

	quizService := app.NewQuizService(app.QuizServiceConfig{
		Quizzes:      quizzes,
		Recorder:     metrics,
		Rand:         newRand(cfg.Quiz.RandomSeed),
		DefaultCount: cfg.Quiz.DefaultCount,
		Logger:       logger,
	})
	authorService := app.NewAuthorService(st.users, cfg.Quiz.DefaultAuthor, logger)
	answerService := app.NewAnswerService(nil)

	// 6. HTTP server
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.Telemetry.ServiceName,
		AuthConfig:    &cfg.Auth,
		CORSConfig:    &cfg.CORS,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, buildInfo, metrics.Handler()),
		QuizHandler:   handlers.NewQuizHandler(quizService, authorService),
		AnswerHandler: handlers.NewAnswerHandler(answerService),
		Timeout:       cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newRand returns nil for a zero seed so the service seeds from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}

	return rand.New(rand.NewPCG(seed, seed>>1))
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	case <-ctx.Done():
		logger.Info("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

