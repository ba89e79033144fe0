package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/testmaker/quizapi/internal/adapters/repository/gormstore"
	"github.com/testmaker/quizapi/internal/adapters/repository/memory"
	"github.com/testmaker/quizapi/internal/platform/config"
	"github.com/testmaker/quizapi/internal/ports"
)

var errNoSQLDatabase = errors.New("the memory driver has no schema to migrate")

// stores bundles the repositories selected by database.driver.
type stores struct {
	quizzes ports.QuizRepository
	users   ports.UserRepository
	health  ports.HealthChecker
	close   func() error
}

// openStores builds the entity store. SQL drivers are migrated first when
// database.auto_migrate is set (or migrate is true).
func openStores(ctx context.Context, cfg *config.DatabaseConfig, migrate bool, logger *slog.Logger) (*stores, error) {
	if cfg.Driver == config.DriverMemory {
		quizzes := memory.NewQuizStore()

		return &stores{
			quizzes: quizzes,
			users:   memory.NewUserStore(),
			health:  quizzes,
			close:   func() error { return nil },
		}, nil
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if migrate || cfg.AutoMigrate {
		if err := gormstore.AutoMigrate(ctx, db); err != nil {
			_ = gormstore.Close(db)
			return nil, err
		}
	}

	return &stores{
		quizzes: gormstore.NewQuizStore(db),
		users:   gormstore.NewUserStore(db),
		health:  gormstore.NewHealthChecker(db),
		close:   func() error { return gormstore.Close(db) },
	}, nil
}

func openDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.Driver == config.DriverMemory {
		return nil, errNoSQLDatabase
	}

	db, err := gormstore.Open(ctx, cfg.Driver, cfg.DSN, gormstore.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	logger.Info("database connected", slog.String("driver", cfg.Driver))

	return db, nil
}
