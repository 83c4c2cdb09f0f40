package store

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// countsQuery computes both counts in a single round trip so the backlog and
// processed figures can never reflect different table states.
const countsQuery = `
SELECT
    COUNT(*) FILTER (WHERE status = 'PENDING'),
    COUNT(*) FILTER (WHERE status = 'PROCESSED')
FROM orders`

// Counts is an order count snapshot taken by one query.
type Counts struct {
	Backlog   int64
	Processed int64
}

// Querier is the subset of *pgxpool.Pool the store uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads aggregate order counts from the orders database.
type Store struct {
	db     Querier
	logger *slog.Logger
}

// New creates a Store on top of an existing connection pool.
func New(db Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// FetchCounts runs the aggregate query and returns a fresh snapshot.
// Connection and query failures are returned as a *DataSourceError.
func (s *Store) FetchCounts(ctx context.Context) (Counts, error) {
	var backlog, processed *int64

	if err := s.db.QueryRow(ctx, countsQuery).Scan(&backlog, &processed); err != nil {
		return Counts{}, &DataSourceError{Op: "query order counts", Err: err}
	}

	counts := Counts{
		Backlog:   coerce(backlog),
		Processed: coerce(processed),
	}

	s.logger.Debug("fetched order counts",
		"backlog", counts.Backlog,
		"processed", counts.Processed,
	)

	return counts, nil
}

// coerce maps absent or negative aggregates to zero.
func coerce(v *int64) int64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
