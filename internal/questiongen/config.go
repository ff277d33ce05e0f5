package questiongen

import "time"

// RetryConfig configures the per-question retry loop.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialWait is the delay before the second attempt. Zero disables
	// waiting between attempts.
	InitialWait time.Duration

	// MaxWait caps the delay between attempts.
	MaxWait time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64
}

// Config controls the behavior of the Generator.
type Config struct {
	Retry RetryConfig

	// PersonaStyle is interpolated into every prompt. Empty means
	// DefaultPersonaStyle.
	PersonaStyle string

	// MaxTokens is the token budget for one response. Zero leaves the
	// provider default in place.
	MaxTokens int

	// PreviewChars is how much of a failed response is logged.
	PreviewChars int
}

// DefaultConfig returns a Config with three attempts and a short backoff.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		PersonaStyle: DefaultPersonaStyle,
		MaxTokens:    512,
		PreviewChars: 100,
	}
}
