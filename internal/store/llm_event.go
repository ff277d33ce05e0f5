package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

var llmEventColumns = []string{
	"id", "created_at", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo backed by the ent SQL driver.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(llmEventsTable).
		Columns(
			"created_at", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms", "success",
			"error_message", "request_body", "response_body",
		).
		Values(
			time.Now().UTC().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc("id"))

	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		ev, err := scanLLMEvent(&rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(llmEventColumns...).
		From(entsql.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM event %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanLLMEvent(&rows)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "model")
}

func (r *eventRepo) usage(ctx context.Context, key string) ([]LLMUsage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			key,
			entsql.As(entsql.Max("provider"), "any_provider"),
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("success"), "successes"),
			entsql.As(entsql.Sum("input_tokens"), "in_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "out_tokens"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(llmEventsTable)).
		GroupBy(key).
		OrderBy(entsql.Desc("calls")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", key, err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var (
			u          LLMUsage
			successes  int
			avgLatency sql.NullFloat64
		)
		if err := rows.Scan(&u.Key, &u.Provider, &u.Calls, &successes,
			&u.InputTokens, &u.OutputTokens, &avgLatency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.Failures = u.Calls - successes
		u.AvgLatencyMs = int64(avgLatency.Float64)
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanLLMEvent(rows *entsql.Rows) (LLMEvent, error) {
	var (
		ev        LLMEvent
		createdAt int64
	)
	err := rows.Scan(
		&ev.ID, &createdAt, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success,
		&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody,
	)
	if err != nil {
		return LLMEvent{}, fmt.Errorf("scan LLM event: %w", err)
	}
	ev.Timestamp = time.UnixMilli(createdAt).UTC()
	return ev, nil
}
