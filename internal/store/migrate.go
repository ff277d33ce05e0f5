package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_created_at ON llm_request_events (created_at)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id      TEXT    NOT NULL,
		created_at      INTEGER NOT NULL,
		topic           TEXT    NOT NULL,
		kind            TEXT    NOT NULL,
		difficulty      TEXT    NOT NULL,
		provider        TEXT    NOT NULL DEFAULT '',
		model           TEXT    NOT NULL DEFAULT '',
		question_number INTEGER NOT NULL,
		question        TEXT    NOT NULL,
		correct_answer  TEXT    NOT NULL,
		user_answer     TEXT    NOT NULL DEFAULT '',
		is_correct      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_session_id ON quiz_results (session_id)`,
}

// migrate creates the tables the repositories need.
func migrate(ctx context.Context, drv dialect.ExecQuerier) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
