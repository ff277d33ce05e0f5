package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match (empty = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for a group of requests.
type LLMUsage struct {
	Key          string // purpose or model, depending on the query
	Provider     string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsageByPurpose groups usage by request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel groups usage by provider and model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// QuizRecord is one evaluated quiz to persist.
type QuizRecord struct {
	SessionID  string
	CreatedAt  time.Time
	Topic      string
	Kind       string
	Difficulty string
	Provider   string
	Model      string
	Rows       []ResultRow
}

// ResultRow is a single graded question.
type ResultRow struct {
	QuestionNumber int
	Question       string
	CorrectAnswer  string
	UserAnswer     string
	IsCorrect      bool
}

// QuizSummary is the per-session rollup shown in history listings.
type QuizSummary struct {
	SessionID  string
	CreatedAt  time.Time
	Topic      string
	Kind       string
	Difficulty string
	Total      int
	Correct    int
}

// ResultRepo persists evaluated quizzes.
type ResultRepo interface {
	// SaveQuiz writes every row of the record in one transaction.
	SaveQuiz(ctx context.Context, rec QuizRecord) error

	// RecentQuizzes returns up to limit sessions, newest first.
	RecentQuizzes(ctx context.Context, limit int) ([]QuizSummary, error)

	// QuizRows returns the graded rows of a session in question order.
	QuizRows(ctx context.Context, sessionID string) ([]ResultRow, error)
}
