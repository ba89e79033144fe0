//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/testmaker/quizapi/internal/adapters/cache/rediscache"
	quizhttp "github.com/testmaker/quizapi/internal/adapters/http"
	"github.com/testmaker/quizapi/internal/adapters/http/handlers"
	"github.com/testmaker/quizapi/internal/adapters/repository/gormstore"
	"github.com/testmaker/quizapi/internal/adapters/repository/memory"
	"github.com/testmaker/quizapi/internal/app"
	"github.com/testmaker/quizapi/internal/domain"
	"github.com/testmaker/quizapi/internal/platform/config"
	"github.com/testmaker/quizapi/internal/platform/telemetry"
	"github.com/testmaker/quizapi/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	subjectHeader = "X-User-ID"

	// knownAuthorID is provisioned in every stack; other subjects are unknown.
	knownAuthorID = "author-1"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// backend is one entity store configuration under test.
type backend struct {
	quizzes ports.QuizRepository
	users   ports.UserRepository
	checks  []ports.HealthChecker
}

func memoryBackend() *backend {
	quizzes := memory.NewQuizStore()

	return &backend{quizzes: quizzes, users: memory.NewUserStore(), checks: []ports.HealthChecker{quizzes}}
}

// sqliteBackend opens a private sqlite file with the schema applied.
func sqliteBackend(t testing.TB) *backend {
	t.Helper()

	ctx := context.Background()

	db, err := gormstore.Open(ctx, gormstore.DriverSQLite,
		"file:"+t.TempDir()+"/quiz.db?_foreign_keys=on", gormstore.Options{Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormstore.Close(db) })

	require.NoError(t, gormstore.AutoMigrate(ctx, db))

	return &backend{
		quizzes: gormstore.NewQuizStore(db),
		users:   gormstore.NewUserStore(db),
		checks:  []ports.HealthChecker{gormstore.NewHealthChecker(db)},
	}
}

// withCache puts a miniredis-backed read-through cache in front of b.
func withCache(t testing.TB, b *backend) (*backend, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := rediscache.NewClient(rediscache.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &backend{
		quizzes: rediscache.NewQuizCache(b.quizzes, client, time.Minute, discardLogger()),
		users:   b.users,
		checks:  append(b.checks, rediscache.NewHealthChecker(client)),
	}, mr
}

// stack is the fully wired API served over a real listener.
type stack struct {
	server  *httptest.Server
	quizzes *app.QuizService
	metrics *telemetry.QuizMetrics
}

// newStack seeds the fallback author (no sample quizzes) plus knownAuthorID and serves the
// router the way the serve command wires it.
func newStack(t testing.TB, b *backend) *stack {
	t.Helper()

	logger := discardLogger()

	_, err := app.NewSeeder(app.SeederConfig{Users: b.users, Quizzes: b.quizzes, Logger: logger}).
		Seed(context.Background())
	require.NoError(t, err)
	require.NoError(t, b.users.Insert(context.Background(), &domain.User{
		ID: knownAuthorID, UserName: "author", CreatedDate: time.Now(), LastModifiedDate: time.Now(),
	}))

	registry := ports.NewHealthRegistry()
	for i, check := range b.checks {
		if i == 0 {
			require.NoError(t, registry.Register(check))
			continue
		}

		require.NoError(t, registry.RegisterOptional(check))
	}

	metrics := telemetry.NewQuizMetrics()
	quizzes := app.NewQuizService(app.QuizServiceConfig{
		Quizzes:  b.quizzes,
		Recorder: metrics,
		Rand:     rand.New(rand.NewPCG(7, 11)),
		Logger:   logger,
	})

	engine := gin.New()
	quizhttp.SetupRouter(engine, quizhttp.RouterConfig{
		Logger:        logger,
		ServiceName:   "quizapi-integration",
		AuthConfig:    &config.AuthConfig{SubjectHeader: subjectHeader},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now"), metrics.Handler()),
		QuizHandler:   handlers.NewQuizHandler(quizzes, app.NewAuthorService(b.users, "", logger)),
		AnswerHandler: handlers.NewAnswerHandler(app.NewAnswerService(nil)),
		Timeout:       5 * time.Second,
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return &stack{server: server, quizzes: quizzes, metrics: metrics}
}
