// Package sqlite implements ports.QuoteRepository on SQLite.
//
// The store owns a bounded database/sql pool for the process lifetime;
// handlers check connections out per operation and return them on completion.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// DefaultBatchSize bounds the number of rows per INSERT statement during a
// reload. It bounds statement size, not atomicity: all batches share one
// transaction.
const DefaultBatchSize = 100

// tableNameRE restricts table names to plain identifiers so the name can be
// interpolated into DDL safely.
var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config contains configuration for the SQLite store.
type Config struct {
	// Path is the database file location. ":memory:" is accepted for tests.
	Path string

	// Table is the quotes table name.
	Table string

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int

	// BusyTimeout is how long a statement waits on a locked database.
	BusyTimeout time.Duration

	// BatchSize is the number of rows per INSERT during a reload.
	// Defaults to DefaultBatchSize.
	BatchSize int

	// Logger receives store diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is the SQLite-backed quote repository.
type Store struct {
	db        *sql.DB
	table     string
	batchSize int
	logger    *slog.Logger
}

// Open opens the database file, applies pragmas, verifies connectivity, and
// returns a ready store. The parent directory is created if needed.
func Open(cfg Config) (*Store, error) {
	if err := validateTableName(cfg.Table); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Path); !isMemoryPath(cfg.Path) && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensuring data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	pragmas := []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA journal_mode = WAL;`,
	}
	if cfg.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf(`PRAGMA busy_timeout = %d;`, cfg.BusyTimeout.Milliseconds()))
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		db:        db,
		table:     cfg.Table,
		batchSize: batchSize,
		logger:    logger.With(slog.String("component", "sqlite.Store")),
	}, nil
}

// EnsureSchema creates the quotes table and indexes if absent. Safe to call
// on every start; an existing populated table is left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, SchemaFor(s.table)); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	return nil
}

// ReplaceAll implements ports.QuoteRepository.
//
// Reload policy: destructive replace. The table is dropped, recreated, and
// repopulated inside a single transaction, so a failed reload leaves the
// previous contents intact and readers never observe a half-loaded table
// as committed state.
func (s *Store) ReplaceAll(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return domain.NewValidationError("quotes", "refusing to replace table with zero records")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewUnavailableError("sqlite", fmt.Sprintf("begin transaction: %v", err))
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(dropSQL, s.table)); err != nil {
		return domain.NewUnavailableError("sqlite", fmt.Sprintf("drop table: %v", err))
	}
	if _, err := tx.ExecContext(ctx, SchemaFor(s.table)); err != nil {
		return domain.NewUnavailableError("sqlite", fmt.Sprintf("recreate table: %v", err))
	}

	for start := 0; start < len(quotes); start += s.batchSize {
		end := min(start+s.batchSize, len(quotes))

		if err := s.insertBatch(ctx, tx, quotes[start:end]); err != nil {
			return domain.NewUnavailableError("sqlite",
				fmt.Sprintf("insert batch %d-%d: %v", start, end-1, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewUnavailableError("sqlite", fmt.Sprintf("commit: %v", err))
	}

	s.logger.Info("quotes table replaced",
		slog.String("table", s.table),
		slog.Int("records", len(quotes)),
	)

	return nil
}

// insertBatch writes one bounded multi-row INSERT inside the reload transaction.
func (s *Store) insertBatch(ctx context.Context, tx *sql.Tx, batch []domain.Quote) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (quote, author, season, episode) VALUES ", s.table)

	args := make([]any, 0, len(batch)*4)
	for i, q := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?)")
		args = append(args, q.Text, q.Author, q.Season, q.Episode)
	}

	_, err := tx.ExecContext(ctx, sb.String(), args...)

	return err
}

// ListAll implements ports.QuoteRepository.
func (s *Store) ListAll(ctx context.Context) ([]domain.Quote, error) {
	query := fmt.Sprintf(
		`SELECT id, quote, author, season, episode, created_at FROM %s ORDER BY id`,
		s.table,
	)

	return s.queryQuotes(ctx, query)
}

// ListByAuthor implements ports.QuoteRepository. The match is exact but
// case-insensitive, and the author value is always passed as a bind
// parameter, never interpolated.
func (s *Store) ListByAuthor(ctx context.Context, author string) ([]domain.Quote, error) {
	query := fmt.Sprintf(
		`SELECT id, quote, author, season, episode, created_at FROM %s
		 WHERE LOWER(author) = LOWER(?) ORDER BY id`,
		s.table,
	)

	return s.queryQuotes(ctx, query, author)
}

// CountAll implements ports.QuoteRepository.
func (s *Store) CountAll(ctx context.Context) (int, error) {
	var total int

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table))
	if err := row.Scan(&total); err != nil {
		return 0, domain.NewUnavailableError("sqlite", fmt.Sprintf("counting quotes: %v", err))
	}

	return total, nil
}

// CountByAuthor implements ports.QuoteRepository.
func (s *Store) CountByAuthor(ctx context.Context) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT author, COUNT(*) FROM %s GROUP BY author`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("counting by author: %v", err))
	}
	defer rows.Close()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			author string
			n      int
		)
		if err := rows.Scan(&author, &n); err != nil {
			return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("scanning author count: %v", err))
		}
		counts[author] = n
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("iterating author counts: %v", err))
	}

	return counts, nil
}

// queryQuotes runs a quote SELECT and scans the full result set.
func (s *Store) queryQuotes(ctx context.Context, query string, args ...any) ([]domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("querying quotes: %v", err))
	}
	defer rows.Close()

	quotes := make([]domain.Quote, 0, 64)

	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &q.Season, &q.Episode, &q.CreatedAt); err != nil {
			return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("scanning quote: %v", err))
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewUnavailableError("sqlite", fmt.Sprintf("iterating quotes: %v", err))
	}

	return quotes, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "sqlite" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the pool. Safe to call multiple times.
func (s *Store) Close() error {
	return s.db.Close()
}

func validateTableName(name string) error {
	if !tableNameRE.MatchString(name) {
		return domain.NewValidationError("table", fmt.Sprintf("invalid table name %q", name))
	}

	return nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
