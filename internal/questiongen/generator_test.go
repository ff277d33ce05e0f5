package questiongen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizgen/internal/llm"
)

const cricketJSON = `{"question":"Who won the 1983 World Cup?","options":["India","Australia","Pakistan","England"],"correct_answer":"India"}`

func testConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.Retry = RetryConfig{MaxAttempts: attempts}
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func providerFailure() llm.MockResponse {
	return llm.MockResponse{Err: &llm.ErrProviderInvocation{
		Provider: "mock",
		Err:      &llm.ErrProviderUnavailable{},
	}}
}

func TestGenerateMCQFencedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + cricketJSON + "\n```"})
	gen := New(mock, testConfig(3), quietLogger())

	q, err := gen.GenerateMCQ(context.Background(), "Cricket", DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CorrectAnswer != "India" {
		t.Errorf("correct answer = %q, want India", q.CorrectAnswer)
	}
	if len(mock.Calls) != 1 {
		t.Errorf("calls = %d, want 1", len(mock.Calls))
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Generate a Medium multiple-choice question about Cricket") {
		t.Errorf("unexpected prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "persona that is neutral and educational.") {
		t.Error("empty persona should fall back to the default style")
	}
	if mock.Calls[0].MaxTokens != 512 {
		t.Errorf("max tokens = %d, want 512", mock.Calls[0].MaxTokens)
	}
}

func TestGenerateFillBlank(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"question":"The capital of France is _____.","answer":"Paris"}`})
	cfg := testConfig(3)
	cfg.PersonaStyle = "encouraging and supportive with clear explanations"
	gen := New(mock, cfg, quietLogger())

	q, err := gen.GenerateFillBlank(context.Background(), "Geography", DifficultyEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "Paris" {
		t.Errorf("answer = %q", q.Answer)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "persona that is encouraging and supportive") {
		t.Error("persona style not interpolated")
	}
	if gen.PersonaStyle() != cfg.PersonaStyle {
		t.Errorf("persona = %q", gen.PersonaStyle())
	}
}

// A provider that fails k times then succeeds: success when
// maxAttempts > k, exhaustion reporting exactly maxAttempts otherwise.
func TestRetryFailuresThenSuccess(t *testing.T) {
	failures := []llm.MockResponse{
		providerFailure(),
		{Text: "I'm sorry, I can't help with that."},
		{Text: `{"question":"q","options":["a","b","c"],"correct_answer":"a"}`},
		{Text: `{"question":"q","options":["a","b","c","d"],"correct_answer":"z"}`},
	}

	for k := 0; k <= len(failures); k++ {
		for maxAttempts := 1; maxAttempts <= 5; maxAttempts++ {
			responses := append([]llm.MockResponse{}, failures[:k]...)
			responses = append(responses, llm.MockResponse{Text: cricketJSON})
			mock := llm.NewMockProvider(responses...)
			gen := New(mock, testConfig(maxAttempts), quietLogger())

			q, err := gen.Generate(context.Background(), KindMCQ, "Cricket", DifficultyMedium)

			if maxAttempts > k {
				if err != nil {
					t.Errorf("k=%d max=%d: unexpected error: %v", k, maxAttempts, err)
					continue
				}
				if q.ExpectedAnswer() != "India" {
					t.Errorf("k=%d max=%d: answer = %q", k, maxAttempts, q.ExpectedAnswer())
				}
				if mock.CallCount() != k+1 {
					t.Errorf("k=%d max=%d: calls = %d, want %d", k, maxAttempts, mock.CallCount(), k+1)
				}
				continue
			}

			var exhausted *ErrGenerationExhausted
			if !errors.As(err, &exhausted) {
				t.Errorf("k=%d max=%d: expected *ErrGenerationExhausted, got %T: %v", k, maxAttempts, err, err)
				continue
			}
			if exhausted.Attempts != maxAttempts {
				t.Errorf("k=%d max=%d: attempts = %d", k, maxAttempts, exhausted.Attempts)
			}
			if mock.CallCount() != maxAttempts {
				t.Errorf("k=%d max=%d: calls = %d", k, maxAttempts, mock.CallCount())
			}
		}
	}
}

func TestExhaustedKeepsLastAttempt(t *testing.T) {
	mock := llm.NewMockProvider(
		providerFailure(),
		llm.MockResponse{Text: "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_answer\":\"e\"}\n```"},
	)
	gen := New(mock, testConfig(2), quietLogger())

	_, err := gen.Generate(context.Background(), KindMCQ, "Letters", DifficultyEasy)

	var exhausted *ErrGenerationExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ErrGenerationExhausted, got %T", err)
	}
	if exhausted.Kind != KindMCQ {
		t.Errorf("kind = %q", exhausted.Kind)
	}
	if !strings.HasPrefix(exhausted.LastRaw, "```json") {
		t.Errorf("last raw = %q", exhausted.LastRaw)
	}
	if !strings.HasPrefix(exhausted.LastSanitized, "{") {
		t.Errorf("last sanitized = %q", exhausted.LastSanitized)
	}

	var derr *ErrDomainInvariant
	if !errors.As(err, &derr) {
		t.Errorf("expected wrapped *ErrDomainInvariant, got %v", exhausted.LastErr)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRetryLogsEveryFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	long := strings.Repeat("x", 300)
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: long},
		llm.MockResponse{Text: long},
	)
	gen := New(mock, testConfig(2), logger)

	if _, err := gen.Generate(context.Background(), KindFillBlank, "Go", DifficultyHard); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	if strings.Count(out, "question generation attempt failed") != 2 {
		t.Errorf("expected 2 attempt logs, got:\n%s", out)
	}
	if !strings.Contains(out, "attempt=1") || !strings.Contains(out, "attempt=2") {
		t.Errorf("attempt index missing:\n%s", out)
	}
	if !strings.Contains(out, "max_attempts=2") {
		t.Errorf("max_attempts missing:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Error("response preview was not truncated")
	}
	if !strings.Contains(out, strings.Repeat("x", 100)+"...") {
		t.Errorf("expected 100 char preview:\n%s", out)
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("boom")},
		llm.MockResponse{Text: cricketJSON},
	)
	gen := New(mock, testConfig(3), quietLogger())

	_, err := gen.Generate(context.Background(), KindMCQ, "Cricket", DifficultyEasy)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected raw error, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryCancelledContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: cricketJSON})
	gen := New(mock, testConfig(3), quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, KindMCQ, "Cricket", DifficultyEasy)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
}

func TestRetryBackoffWaitsBetweenAttempts(t *testing.T) {
	mock := llm.NewMockProvider(providerFailure(), llm.MockResponse{Text: cricketJSON})
	cfg := testConfig(2)
	cfg.Retry.InitialWait = 20 * time.Millisecond
	cfg.Retry.MaxWait = time.Second
	cfg.Retry.Multiplier = 2
	gen := New(mock, cfg, quietLogger())

	start := time.Now()
	if _, err := gen.Generate(context.Background(), KindMCQ, "Cricket", DifficultyEasy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("elapsed = %v, expected a backoff wait", elapsed)
	}
}

func TestRetryBackoffAbortsOnCancel(t *testing.T) {
	mock := llm.NewMockProvider(providerFailure(), llm.MockResponse{Text: cricketJSON})
	cfg := testConfig(2)
	cfg.Retry.InitialWait = time.Minute
	cfg.Retry.MaxWait = time.Minute
	gen := New(mock, cfg, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gen.Generate(ctx, KindMCQ, "Cricket", DifficultyEasy)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}

	for attempt, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		got := backoff(cfg, attempt, errors.New("x"))
		lo := time.Duration(float64(base) * 0.8)
		hi := time.Duration(float64(base) * 1.2)
		if got < lo || got > hi {
			t.Errorf("attempt %d: backoff = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}

	if got := backoff(RetryConfig{}, 3, errors.New("x")); got != 0 {
		t.Errorf("zero config backoff = %v, want 0", got)
	}

	rl := &llm.ErrProviderInvocation{Provider: "groq", Err: &llm.ErrRateLimit{RetryAfter: 250 * time.Millisecond}}
	if got := backoff(cfg, 0, rl); got != 250*time.Millisecond {
		t.Errorf("rate limit backoff = %v, want 250ms", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"provider", &llm.ErrProviderInvocation{Provider: "groq", Err: &llm.ErrRateLimit{}}, true},
		{"provider timeout", &llm.ErrProviderInvocation{Provider: "groq", Err: context.DeadlineExceeded}, true},
		{"schema", &ErrSchemaParse{Kind: KindMCQ, Err: errors.New("bad")}, true},
		{"domain", &ErrDomainInvariant{Kind: KindMCQ, Message: "bad"}, true},
		{"precondition", &ErrPrecondition{Field: "topic", Reason: "empty"}, false},
		{"unsupported provider", &llm.ErrUnsupportedProvider{Name: "x"}, false},
		{"cancelled", &llm.ErrProviderInvocation{Provider: "groq", Err: context.Canceled}, false},
		{"plain", errors.New("x"), false},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("%s: IsRetryable = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGenerationRequestValidate(t *testing.T) {
	valid := GenerationRequest{Topic: "Cricket", Difficulty: DifficultyMedium, Kind: KindMCQ, Count: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		mod   func(*GenerationRequest)
		field string
	}{
		{"blank topic", func(r *GenerationRequest) { r.Topic = "  " }, "topic"},
		{"bad difficulty", func(r *GenerationRequest) { r.Difficulty = "Extreme" }, "difficulty"},
		{"bad kind", func(r *GenerationRequest) { r.Kind = "essay" }, "kind"},
		{"zero count", func(r *GenerationRequest) { r.Count = 0 }, "count"},
		{"count too high", func(r *GenerationRequest) { r.Count = 11 }, "count"},
	}
	for _, tt := range tests {
		req := valid
		tt.mod(&req)
		err := req.Validate()
		var perr *ErrPrecondition
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected *ErrPrecondition, got %v", tt.name, err)
			continue
		}
		if perr.Field != tt.field {
			t.Errorf("%s: field = %q, want %q", tt.name, perr.Field, tt.field)
		}
	}
}

func TestParseKindAndDifficulty(t *testing.T) {
	for in, want := range map[string]Kind{
		"mcq":               KindMCQ,
		"Multiple Choice":   KindMCQ,
		"fill_blank":        KindFillBlank,
		"Fill in the Blank": KindFillBlank,
	} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseKind("essay"); err == nil {
		t.Error("expected error for essay")
	}

	d, err := ParseDifficulty("hard")
	if err != nil || d != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", d, err)
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Error("expected error for extreme")
	}
}
