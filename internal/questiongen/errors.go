package questiongen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizgen/internal/llm"
)

// ErrSchemaParse indicates the model output was not valid JSON or did not
// match the required shape for its kind.
type ErrSchemaParse struct {
	Kind Kind
	Err  error
}

func (e *ErrSchemaParse) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Kind, e.Err)
}

func (e *ErrSchemaParse) Unwrap() error { return e.Err }

// ErrDomainInvariant indicates structurally valid output that breaks a
// question rule, e.g. a correct answer missing from the options.
type ErrDomainInvariant struct {
	Kind    Kind
	Message string
}

func (e *ErrDomainInvariant) Error() string {
	return fmt.Sprintf("invalid %s question: %s", e.Kind, e.Message)
}

// ErrGenerationExhausted is returned when every attempt failed. It keeps
// the last attempt's output for diagnosis.
type ErrGenerationExhausted struct {
	Kind          Kind
	Attempts      int
	LastErr       error
	LastRaw       string
	LastSanitized string
}

func (e *ErrGenerationExhausted) Error() string {
	return fmt.Sprintf("%s generation failed after %d attempts: %v", e.Kind, e.Attempts, e.LastErr)
}

func (e *ErrGenerationExhausted) Unwrap() error { return e.LastErr }

// ErrPrecondition indicates invalid input detected before any network call.
type ErrPrecondition struct {
	Field  string
	Reason string
}

func (e *ErrPrecondition) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsRetryable reports whether err is one of the kinds the retry loop
// absorbs: provider invocation, schema parse or domain invariant failures.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var inv *llm.ErrProviderInvocation
	var parse *ErrSchemaParse
	var domain *ErrDomainInvariant
	switch {
	case errors.As(err, &inv):
		return true
	case errors.As(err, &parse):
		return true
	case errors.As(err, &domain):
		return true
	default:
		return false
	}
}
