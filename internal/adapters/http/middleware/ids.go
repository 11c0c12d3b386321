// Package middleware provides HTTP middleware components for the Gin server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	// HeaderRequestID is the header carrying the per-request ID.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID is the header carrying the cross-service
	// correlation ID. Unlike the request ID it survives hops between
	// services within one business transaction.
	HeaderCorrelationID = "X-Correlation-ID"
)

// idConfig configures one header-backed ID middleware.
type idConfig struct {
	header   string
	enricher func(ctx context.Context, id string) context.Context
}

// newIDMiddleware extracts the ID from the configured header, generating a
// UUID v4 when absent, then echoes it on the response and enriches the
// context logger. Downstream code reads the ID from the logger's attributes,
// not from the gin context.
func newIDMiddleware(cfg idConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if id == "" {
			id = uuid.New().String()
		}

		c.Header(cfg.header, id)

		if cfg.enricher != nil {
			c.Request = c.Request.WithContext(cfg.enricher(c.Request.Context(), id))
		}

		c.Next()
	}
}

// RequestID returns middleware that extracts or generates a request ID.
func RequestID() gin.HandlerFunc {
	return newIDMiddleware(idConfig{
		header:   HeaderRequestID,
		enricher: logging.WithRequestID,
	})
}

// CorrelationID returns middleware that propagates or originates a
// correlation ID.
func CorrelationID() gin.HandlerFunc {
	return newIDMiddleware(idConfig{
		header:   HeaderCorrelationID,
		enricher: logging.WithCorrelationID,
	})
}
