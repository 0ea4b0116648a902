package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/error402-ai/intellitest/internal/assessment"
)

const resultsTable = "test_results"

// resultRepo implements ResultRepo.
type resultRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *resultRepo) SaveResult(ctx context.Context, result assessment.TestResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	completed := result.CompletedAt
	if completed.IsZero() {
		completed = time.Now()
	}

	questions, err := json.Marshal(result.Questions)
	if err != nil {
		return fmt.Errorf("marshal answered questions: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(resultsTable).
		Columns("id", "sequence", "timestamp", "score", "time_spent", "difficulty", "blooms_level", "questions").
		Values(result.ID, seqNum, completed.UTC().UnixMilli(), result.Score, result.TimeSpent,
			result.Difficulty, string(result.BloomsLevel), string(questions)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save test result: %w", err)
	}
	return nil
}

func (r *resultRepo) RecentResults(ctx context.Context, limit int) ([]assessment.TestResult, error) {
	sel := builder.Select("id", "timestamp", "score", "time_spent", "difficulty", "blooms_level", "questions").
		From(builder.Table(resultsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query test results: %w", err)
	}
	defer rows.Close()

	var results []assessment.TestResult
	for rows.Next() {
		var (
			res       assessment.TestResult
			ts        int64
			level     string
			questions string
		)
		if err := rows.Scan(&res.ID, &ts, &res.Score, &res.TimeSpent, &res.Difficulty, &level, &questions); err != nil {
			return nil, fmt.Errorf("scan test result: %w", err)
		}
		res.BloomsLevel = assessment.BloomsLevel(level)
		res.CompletedAt = time.UnixMilli(ts).UTC()
		if err := json.Unmarshal([]byte(questions), &res.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal answered questions for %s: %w", res.ID, err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest first from the query; callers want chronological order.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}
