package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/testmaker/quizapi/internal/adapters/http/dto"
	"github.com/testmaker/quizapi/internal/adapters/http/handlers"
	"github.com/testmaker/quizapi/internal/adapters/http/middleware"
	"github.com/testmaker/quizapi/internal/platform/config"
	"github.com/testmaker/quizapi/internal/platform/telemetry"
)

// DefaultRequestTimeout applies to /api routes when RouterConfig.Timeout is zero.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains everything SetupRouter wires onto the engine.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names spans created by the tracing middleware.
	ServiceName string

	AuthConfig *config.AuthConfig
	CORSConfig *config.CORSConfig

	HealthHandler *handlers.HealthHandler
	QuizHandler   *handlers.QuizHandler
	AnswerHandler *handlers.AnswerHandler

	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery (also seeds the request logger)
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and HTTP metrics
//  5. Logging (skips /-/ paths)
//  6. CORS, when enabled
//  7. Identity and timeout, on /api only
//
// Route groups:
//   - /-/ operational endpoints
//   - /api/ quiz and answer endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.CORSConfig != nil && cfg.CORSConfig.Enabled {
		engine.Use(cors.New(corsConfig(cfg.CORSConfig)))
	}

	engine.NoRoute(dto.NotRouted)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api")
	api.Use(middleware.Identify(cfg.AuthConfig), middleware.Timeout(timeout))

	if cfg.QuizHandler != nil {
		cfg.QuizHandler.RegisterRoutes(api)
	}

	if cfg.AnswerHandler != nil {
		cfg.AnswerHandler.RegisterRoutes(api)
	}
}

// corsConfig allows the browser client's origins to use every quiz verb.
func corsConfig(c *config.CORSConfig) cors.Config {
	return cors.Config{
		AllowOrigins:     c.AllowedOrigins,
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID, middleware.HeaderCorrelationID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderCorrelationID, telemetry.HeaderTraceID},
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
}
