package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for business requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything SetupRouter needs.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the service in traces.
	ServiceName string

	// TelemetryEnabled toggles the tracing and metrics middleware.
	TelemetryEnabled bool

	// QuoteHandler serves the quote endpoints.
	QuoteHandler *handlers.QuoteHandler

	// HealthHandler serves the internal /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// Timeout is the per-request deadline for business routes.
	// Zero means DefaultRequestTimeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware order: recovery first so it covers everything, then the ID
// middlewares so the logger is enriched before the request is logged, then
// telemetry, logging, and the request deadline. Health endpoints bypass the
// deadline so probes stay cheap.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.TelemetryEnabled {
		engine.Use(
			telemetry.TracingMiddleware(cfg.ServiceName),
			telemetry.Middleware(),
		)
	}

	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("")
	api.Use(middleware.Timeout(timeout))

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(api)
	}
}
