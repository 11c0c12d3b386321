// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// LoadReport describes the outcome of reading the quote source.
type LoadReport struct {
	// Parsed is the number of valid records produced.
	Parsed int

	// Skipped is the number of malformed rows that were dropped
	// (short rows, non-integer season/episode, blank fields).
	Skipped int
}

// QuoteSource produces validated quote records from an external source,
// such as the deployment's CSV file.
type QuoteSource interface {
	// Load reads the whole source and returns the validated records in
	// source order, together with a report of what was skipped.
	// A missing source is an error; malformed rows are not - they are
	// skipped and counted in the report.
	Load(ctx context.Context) ([]domain.Quote, LoadReport, error)
}

// QuoteRepository persists quotes in a relational store.
//
// The table is append-only between reloads; ReplaceAll is the only write
// and swaps the entire table contents in one transaction.
type QuoteRepository interface {
	// ReplaceAll atomically replaces the table contents with the given
	// records. An empty slice is a validation error - a reload must never
	// silently truncate the table. Returns domain.ErrUnavailable when the
	// store cannot be reached or the transaction fails; on failure the
	// previous contents are left intact.
	ReplaceAll(ctx context.Context, quotes []domain.Quote) error

	// ListAll returns every stored quote ordered by id.
	ListAll(ctx context.Context) ([]domain.Quote, error)

	// ListByAuthor returns quotes whose author matches the given value
	// exactly, ignoring case. A missing author yields an empty slice,
	// not an error.
	ListByAuthor(ctx context.Context, author string) ([]domain.Quote, error)

	// CountAll returns the number of stored quotes.
	CountAll(ctx context.Context) (int, error)

	// CountByAuthor returns per-author quote counts for every stored author.
	CountByAuthor(ctx context.Context) (map[string]int, error)
}
