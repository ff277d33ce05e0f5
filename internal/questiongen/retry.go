package questiongen

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/quizgen/internal/llm"
)

// attemptResult is the outcome of one generate-sanitize-parse attempt.
type attemptResult struct {
	question  Question
	raw       string
	sanitized string
	err       error
}

// retry runs fn until it succeeds, fails with a non-retryable error, the
// context ends, or cfg.MaxAttempts is reached. Attempts run strictly one
// after another. onFailure is called after every failed attempt.
func retry(ctx context.Context, kind Kind, cfg RetryConfig, fn func(ctx context.Context) attemptResult, onFailure func(attempt, total int, res attemptResult)) (Question, error) {
	maxAttempts := max(cfg.MaxAttempts, 1)

	var last attemptResult
	for attempt := range maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := fn(ctx)
		if res.err == nil {
			return res.question, nil
		}
		last = res

		if onFailure != nil {
			onFailure(attempt+1, maxAttempts, res)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsRetryable(res.err) {
			return nil, res.err
		}

		// Last attempt, don't sleep.
		if attempt == maxAttempts-1 {
			break
		}

		wait := backoff(cfg, attempt, res.err)
		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, &ErrGenerationExhausted{
		Kind:          kind,
		Attempts:      maxAttempts,
		LastErr:       last.err,
		LastRaw:       last.raw,
		LastSanitized: last.sanitized,
	}
}

// backoff computes the wait before the attempt following attempt.
func backoff(cfg RetryConfig, attempt int, err error) time.Duration {
	if cfg.InitialWait <= 0 {
		return 0
	}

	// Respect RetryAfter for rate limits.
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if cfg.MaxWait > 0 && rl.RetryAfter > cfg.MaxWait {
			return cfg.MaxWait
		}
		return rl.RetryAfter
	}

	multiplier := cfg.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	wait := float64(cfg.InitialWait) * math.Pow(multiplier, float64(attempt))
	if cfg.MaxWait > 0 && wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
