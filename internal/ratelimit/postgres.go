package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// postgresStore backs counters with the rate_limits table. The row lock
// taken by SELECT ... FOR UPDATE serializes concurrent checks for one
// identity while leaving other identities unblocked.
type postgresStore struct {
	db     *sql.DB
	policy Policy
}

func newPostgresStore(db *sql.DB, policy Policy) *postgresStore {
	return &postgresStore{db: db, policy: policy}
}

// Check implements Store
func (s *postgresStore) Check(ctx context.Context, identity string) (*Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting rate limit transaction: %w", err)
	}
	defer tx.Rollback()

	// Ensure a row exists before locking it; DO NOTHING keeps a concurrent
	// creator's row intact.
	insertQuery := `
	INSERT INTO rate_limits (identity, window_start, count, updated_at)
	VALUES ($1, CURRENT_TIMESTAMP, 0, CURRENT_TIMESTAMP)
	ON CONFLICT (identity) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insertQuery, identity); err != nil {
		return nil, fmt.Errorf("error creating rate limit counter: %w", err)
	}

	var windowStart time.Time
	var count int
	selectQuery := `SELECT window_start, count FROM rate_limits WHERE identity = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, selectQuery, identity).Scan(&windowStart, &count); err != nil {
		return nil, fmt.Errorf("error reading rate limit counter: %w", err)
	}

	result, newWindowStart, newCount := s.policy.evaluate(windowStart, count, time.Now())

	updateQuery := `
	UPDATE rate_limits
	SET window_start = $2, count = $3, updated_at = CURRENT_TIMESTAMP
	WHERE identity = $1
	`
	if _, err := tx.ExecContext(ctx, updateQuery, identity, newWindowStart, newCount); err != nil {
		return nil, fmt.Errorf("error updating rate limit counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing rate limit transaction: %w", err)
	}

	return result, nil
}

// Close implements Store. The connection is owned by the caller.
func (s *postgresStore) Close() error {
	return nil
}
