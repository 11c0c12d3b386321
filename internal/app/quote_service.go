// Package app contains application services that orchestrate use cases.
// It coordinates domain logic and infrastructure through ports and depends
// on port interfaces, not concrete implementations.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// QuoteService orchestrates the reload and read use cases.
type QuoteService struct {
	source  ports.QuoteSource
	repo    ports.QuoteRepository
	logger  *slog.Logger
	metrics *Metrics
}

// QuoteServiceConfig contains the dependencies for the quote service.
type QuoteServiceConfig struct {
	Source  ports.QuoteSource
	Repo    ports.QuoteRepository
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Source and Repo are required; Logger defaults to slog.Default() and a nil
// Metrics disables counting.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Source == nil {
		panic("app: QuoteService requires a quote source")
	}
	if cfg.Repo == nil {
		panic("app: QuoteService requires a quote repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		source:  cfg.Source,
		repo:    cfg.Repo,
		logger:  logger.With(slog.String("component", "app.QuoteService")),
		metrics: cfg.Metrics,
	}
}

// ReloadResult summarizes a completed reload.
type ReloadResult struct {
	// Loaded is the number of records now in the table.
	Loaded int

	// Skipped is the number of malformed source rows that were dropped.
	Skipped int
}

// Reload re-populates the quotes table from the configured source.
//
// The whole operation is all-or-nothing: a source read failure, an empty
// result, or any storage failure leaves the previous table contents intact.
// There are no retries; the caller re-issues the request on failure.
func (s *QuoteService) Reload(ctx context.Context) (ReloadResult, error) {
	s.logger.InfoContext(ctx, "reload started")

	quotes, report, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.ReloadFailed()
		s.logger.ErrorContext(ctx, "reload failed reading source", slog.Any("error", err))

		return ReloadResult{}, fmt.Errorf("reading quote source: %w", err)
	}

	if len(quotes) == 0 {
		s.metrics.ReloadFailed()

		return ReloadResult{}, domain.NewEmptyLoadError("quote source", report.Skipped)
	}

	if err := s.repo.ReplaceAll(ctx, quotes); err != nil {
		s.metrics.ReloadFailed()
		s.logger.ErrorContext(ctx, "reload failed replacing table", slog.Any("error", err))

		return ReloadResult{}, fmt.Errorf("replacing quotes: %w", err)
	}

	result := ReloadResult{Loaded: len(quotes), Skipped: report.Skipped}
	s.metrics.ReloadSucceeded(result.Loaded, result.Skipped)

	s.logger.InfoContext(ctx, "reload completed",
		slog.Int("loaded", result.Loaded),
		slog.Int("skipped", result.Skipped),
	)

	return result, nil
}

// ListQuotes returns every stored quote.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes", slog.Any("error", err))

		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// ListQuotesByAuthor returns stored quotes whose author matches the given
// value, ignoring case. An unknown author yields an empty slice.
func (s *QuoteService) ListQuotesByAuthor(ctx context.Context, author string) ([]domain.Quote, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, domain.NewValidationError("author", "cannot be empty")
	}

	quotes, err := s.repo.ListByAuthor(ctx, author)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes by author",
			slog.String("author", author),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("listing quotes by author: %w", err)
	}

	return quotes, nil
}

// QuoteStats returns the total quote count and per-author counts. The two
// queries run concurrently.
func (s *QuoteService) QuoteStats(ctx context.Context) (domain.AuthorStats, error) {
	total, byAuthor, err := Parallel2(ctx, s.repo.CountAll, s.repo.CountByAuthor)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to gather stats", slog.Any("error", err))

		return domain.AuthorStats{}, fmt.Errorf("gathering quote stats: %w", err)
	}

	return domain.AuthorStats{Total: total, ByAuthor: byAuthor}, nil
}
