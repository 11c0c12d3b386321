// Package csv reads the deployment's quote CSV file and turns it into
// validated domain records. It is the leaf adapter behind ports.QuoteSource.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// expected column order: quote, author, season, episode.
const minColumns = 4

// Source reads quotes from a CSV file with a header row and columns
// (quote, author, season, episode).
type Source struct {
	path   string
	logger *slog.Logger
}

// SourceConfig contains configuration for the CSV source.
type SourceConfig struct {
	// Path is the location of the CSV file.
	Path string

	// Logger receives row-level skip diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewSource creates a CSV-backed quote source.
func NewSource(cfg SourceConfig) *Source {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Source{
		path:   cfg.Path,
		logger: logger.With(slog.String("component", "csv.Source")),
	}
}

// Load implements ports.QuoteSource.
//
// A missing or unreadable file fails the whole load. Malformed rows do not:
// rows with fewer than four fields, non-integer season/episode, or blank
// quote/author are skipped, counted, and logged, and reading continues.
func (s *Source) Load(ctx context.Context) ([]domain.Quote, ports.LoadReport, error) {
	var report ports.LoadReport

	f, err := os.Open(s.path)
	if err != nil {
		return nil, report, fmt.Errorf("opening quote source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// Skip the header row unconditionally.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, report, nil
		}
		return nil, report, fmt.Errorf("reading header: %w", err)
	}

	quotes := make([]domain.Quote, 0, 256)

	// Header is line 1; data rows start at 2.
	for rowNum := 2; ; rowNum++ {
		if err := ctx.Err(); err != nil {
			return nil, report, fmt.Errorf("reading %s: %w", s.path, err)
		}

		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("reading row %d: %w", rowNum, err)
		}

		quote, ok := s.parseRow(row, rowNum)
		if !ok {
			report.Skipped++
			continue
		}

		quotes = append(quotes, quote)
		report.Parsed++
	}

	s.logger.Info("quote source read",
		slog.String("path", s.path),
		slog.Int("parsed", report.Parsed),
		slog.Int("skipped", report.Skipped),
	)

	return quotes, report, nil
}

// parseRow validates a single data row. A false return means the row was
// skipped; the reason has already been logged.
func (s *Source) parseRow(row []string, rowNum int) (domain.Quote, bool) {
	if len(row) < minColumns {
		s.logger.Warn("skipping row: insufficient columns",
			slog.Int("row", rowNum),
			slog.Int("columns", len(row)),
		)
		return domain.Quote{}, false
	}

	text := normalizeQuoteText(row[0])
	author := strings.TrimSpace(row[1])

	if text == "" || author == "" {
		s.logger.Warn("skipping row: blank quote or author",
			slog.Int("row", rowNum),
		)
		return domain.Quote{}, false
	}

	season, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		s.logger.Warn("skipping row: invalid season",
			slog.Int("row", rowNum),
			slog.String("value", row[2]),
		)
		return domain.Quote{}, false
	}

	episode, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		s.logger.Warn("skipping row: invalid episode",
			slog.Int("row", rowNum),
			slog.String("value", row[3]),
		)
		return domain.Quote{}, false
	}

	return domain.Quote{
		Text:    text,
		Author:  author,
		Season:  season,
		Episode: episode,
	}, true
}

// normalizeQuoteText trims whitespace, strips a single pair of outer double
// quotes if present (standard CSV quoting is already resolved by the reader;
// some source files are quoted twice), and collapses CSV-escaped embedded
// quotes ("" becomes ").
func normalizeQuoteText(raw string) string {
	text := strings.TrimSpace(raw)

	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	return strings.ReplaceAll(text, `""`, `"`)
}
