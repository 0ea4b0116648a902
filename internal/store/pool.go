package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/error402-ai/intellitest/internal/assessment"
)

const poolsTable = "question_pools"

// poolInsertBatch bounds the rows per INSERT. Six bound variables per row
// keeps a statement well under SQLite's variable limit.
const poolInsertBatch = 100

// poolRepo implements PoolRepo. Each question is stored as a JSON document
// keyed by (pool, position).
type poolRepo struct {
	db *sql.DB
}

func (r *poolRepo) SavePool(ctx context.Context, name string, questions []assessment.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := builder.Delete(poolsTable).Where(entsql.EQ("pool", name)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear pool %q: %w", name, err)
	}

	now := time.Now().UTC().UnixMilli()
	for start := 0; start < len(questions); start += poolInsertBatch {
		batch := questions[start:min(start+poolInsertBatch, len(questions))]
		if err := insertPoolRows(ctx, tx, name, start, batch, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// insertPoolRows writes one multi-row INSERT for batch, numbering positions
// from offset.
func insertPoolRows(ctx context.Context, tx *sql.Tx, name string, offset int, batch []assessment.Question, now int64) error {
	ins := builder.Insert(poolsTable).
		Columns("pool", "position", "question_id", "quality_score", "data", "created_at")
	for i, q := range batch {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %s: %w", q.ID, err)
		}
		ins.Values(name, offset+i, q.ID, q.QualityScore, string(data), now)
	}
	query, args := ins.Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pool %q: %w", name, err)
	}
	return nil
}

func (r *poolRepo) LoadPool(ctx context.Context, name string) ([]assessment.Question, error) {
	query, args := builder.Select("data").
		From(builder.Table(poolsTable)).
		Where(entsql.EQ("pool", name)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pool %q: %w", name, err)
	}
	defer rows.Close()

	var out []assessment.Question
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan pool row: %w", err)
		}
		var q assessment.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, fmt.Errorf("unmarshal pool question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *poolRepo) Pools(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pool, COUNT(*) FROM question_pools GROUP BY pool`)
	if err != nil {
		return nil, fmt.Errorf("query pools: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan pools: %w", err)
		}
		out[name] = n
	}
	return out, rows.Err()
}
