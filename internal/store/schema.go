package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as unix milliseconds.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS row_sequence (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO row_sequence (id, next_val) VALUES (1, 1)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_model ON llm_request_events (model)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id           TEXT    PRIMARY KEY,
		sequence     INTEGER NOT NULL UNIQUE,
		timestamp    INTEGER NOT NULL,
		score        REAL    NOT NULL,
		time_spent   INTEGER NOT NULL,
		difficulty   REAL    NOT NULL,
		blooms_level TEXT    NOT NULL,
		questions    TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS question_pools (
		pool          TEXT    NOT NULL,
		position      INTEGER NOT NULL,
		question_id   TEXT    NOT NULL,
		quality_score REAL    NOT NULL DEFAULT 0,
		data          TEXT    NOT NULL,
		created_at    INTEGER NOT NULL,
		PRIMARY KEY (pool, position)
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
