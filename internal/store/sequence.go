package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence numbers every appended row (LLM events and test results) from a
// single counter, so history can be ordered across tables. The row lives in
// the row_sequence table created by migrate.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

// Next returns the next number and advances the counter.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE row_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
