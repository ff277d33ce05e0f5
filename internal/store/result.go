package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const quizResultsTable = "quiz_results"

// resultRepo implements ResultRepo backed by the ent SQL driver.
type resultRepo struct {
	drv *entsql.Driver
}

func (r *resultRepo) SaveQuiz(ctx context.Context, rec QuizRecord) error {
	if rec.SessionID == "" {
		return fmt.Errorf("save quiz: empty session id")
	}
	if len(rec.Rows) == 0 {
		return nil
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ins := entsql.Dialect(dialect.SQLite).
		Insert(quizResultsTable).
		Columns(
			"session_id", "created_at", "topic", "kind", "difficulty",
			"provider", "model", "question_number", "question",
			"correct_answer", "user_answer", "is_correct",
		)
	for _, row := range rec.Rows {
		ins.Values(
			rec.SessionID, createdAt.UTC().UnixMilli(), rec.Topic, rec.Kind, rec.Difficulty,
			rec.Provider, rec.Model, row.QuestionNumber, row.Question,
			row.CorrectAnswer, row.UserAnswer, row.IsCorrect,
		)
	}
	query, args := ins.Query()

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert quiz results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit quiz results: %w", err)
	}
	return nil
}

func (r *resultRepo) RecentQuizzes(ctx context.Context, limit int) ([]QuizSummary, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"session_id", "topic", "kind", "difficulty",
			entsql.As(entsql.Max("created_at"), "last_at"),
			entsql.As(entsql.Count("*"), "total"),
			entsql.As(entsql.Sum("is_correct"), "correct"),
		).
		From(entsql.Table(quizResultsTable)).
		GroupBy("session_id", "topic", "kind", "difficulty").
		OrderBy(entsql.Desc("last_at"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query recent quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizSummary
	for rows.Next() {
		var (
			s      QuizSummary
			lastAt int64
		)
		if err := rows.Scan(&s.SessionID, &s.Topic, &s.Kind, &s.Difficulty,
			&lastAt, &s.Total, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan quiz summary: %w", err)
		}
		s.CreatedAt = time.UnixMilli(lastAt).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *resultRepo) QuizRows(ctx context.Context, sessionID string) ([]ResultRow, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("question_number", "question", "correct_answer", "user_answer", "is_correct").
		From(entsql.Table(quizResultsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Asc("question_number")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query quiz rows: %w", err)
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var row ResultRow
		if err := rows.Scan(&row.QuestionNumber, &row.Question,
			&row.CorrectAnswer, &row.UserAnswer, &row.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan quiz row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
