package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteService is the application surface the handler depends on.
type QuoteService interface {
	Reload(ctx context.Context) (app.ReloadResult, error)
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
	ListQuotesByAuthor(ctx context.Context, author string) ([]domain.Quote, error)
	QuoteStats(ctx context.Context) (domain.AuthorStats, error)
}

// QuoteHandler handles the quote endpoints.
type QuoteHandler struct {
	service QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(service QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Load handles POST /load. It replaces the stored quotes from the CSV source
// and reports the outcome as a status/message pair. Any failure, including an
// empty or missing source, is a 500 with the underlying message.
func (h *QuoteHandler) Load(c *gin.Context) {
	result, err := h.service.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.LoadResponse{
			Status:  dto.LoadStatusError,
			Message: err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, dto.LoadResponse{
		Status:  dto.LoadStatusSuccess,
		Message: fmt.Sprintf("loaded %d quotes (%d rows skipped)", result.Loaded, result.Skipped),
		Loaded:  result.Loaded,
		Skipped: result.Skipped,
	})
}

// ListQuotes handles GET /quotes.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuotesFromDomain(quotes))
}

// ListQuotesByAuthor handles GET /quotes/:author with a case-insensitive
// exact match. No match is a 200 with an empty array, not a 404.
func (h *QuoteHandler) ListQuotesByAuthor(c *gin.Context) {
	quotes, err := h.service.ListQuotesByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuotesFromDomain(quotes))
}

// Stats handles GET /quotes/stats.
func (h *QuoteHandler) Stats(c *gin.Context) {
	stats, err := h.service.QuoteStats(c.Request.Context())
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsFromDomain(stats))
}

// RegisterQuoteRoutes registers the quote endpoints on the given group.
// The stats route is registered alongside the author parameter route; gin
// matches the static segment first, so an author literally named "stats"
// cannot be looked up by path.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.POST("/load", h.Load)
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/stats", h.Stats)
	rg.GET("/quotes/:author", h.ListQuotesByAuthor)
}
