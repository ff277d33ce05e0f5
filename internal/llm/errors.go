package llm

import (
	"fmt"
	"time"
)

// ErrProviderInvocation is the single error type surfaced by every Provider
// implementation. Err holds the classified cause (*ErrRateLimit,
// *ErrAuthentication, *ErrProviderUnavailable, *ErrInvalidResponse) or a
// context error when the call timed out.
type ErrProviderInvocation struct {
	Provider string
	Err      error
}

func (e *ErrProviderInvocation) Error() string {
	return fmt.Sprintf("%s invocation failed: %v", e.Provider, e.Err)
}

func (e *ErrProviderInvocation) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuthentication indicates the provider rejected the credentials (401/403).
type ErrAuthentication struct {
	Err error
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *ErrAuthentication) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered but the payload could
// not be interpreted (no choices, no text block).
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid provider response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrUnsupportedProvider is returned by the factory for a provider name
// outside the supported set.
type ErrUnsupportedProvider struct {
	Name string
}

func (e *ErrUnsupportedProvider) Error() string {
	return fmt.Sprintf("unsupported provider: %q", e.Name)
}

// ErrMissingAPIKey is returned when a provider is constructed without a key.
type ErrMissingAPIKey struct {
	Provider string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("%s API key is required", e.Provider)
}
