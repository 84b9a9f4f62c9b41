package transitionlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool used by PostgresSink.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresSink inserts each line as a row of ticket_transition_log. Rows are only
// ever inserted; the sequence column preserves append order.
type PostgresSink struct {
	db Execer
}

// NewPostgresSink writes through db, usually a *pgxpool.Pool.
func NewPostgresSink(db Execer) *PostgresSink {
	return &PostgresSink{db: db}
}

// WriteLine inserts line as a new row.
func (s *PostgresSink) WriteLine(ctx context.Context, line string) error {
	if s.db == nil {
		return errors.New("postgres pool not configured")
	}
	const query = `INSERT INTO ticket_transition_log (line) VALUES ($1)`
	if _, err := s.db.Exec(ctx, query, line); err != nil {
		return fmt.Errorf("insert transition line: %w", err)
	}
	return nil
}
