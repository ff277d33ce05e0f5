package questiongen

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// ParseMultipleChoice parses sanitized model output into a
// MultipleChoiceQuestion. Shape errors are *ErrSchemaParse; rule
// violations are *ErrDomainInvariant.
func ParseMultipleChoice(text string) (*MultipleChoiceQuestion, error) {
	if err := validateShape(KindMCQ, text); err != nil {
		return nil, &ErrSchemaParse{Kind: KindMCQ, Err: err}
	}

	var q MultipleChoiceQuestion
	if err := json.Unmarshal([]byte(text), &q); err != nil {
		return nil, &ErrSchemaParse{Kind: KindMCQ, Err: err}
	}

	if len(q.Options) != 4 {
		return nil, &ErrDomainInvariant{
			Kind:    KindMCQ,
			Message: fmt.Sprintf("expected 4 options, got %d", len(q.Options)),
		}
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return nil, &ErrDomainInvariant{
				Kind:    KindMCQ,
				Message: fmt.Sprintf("duplicate option %q", o),
			}
		}
		seen[o] = true
	}

	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return nil, &ErrDomainInvariant{
			Kind:    KindMCQ,
			Message: fmt.Sprintf("correct answer %q not found in options %q", q.CorrectAnswer, q.Options),
		}
	}

	return &q, nil
}

// ParseFillBlank parses sanitized model output into a FillBlankQuestion.
func ParseFillBlank(text string) (*FillBlankQuestion, error) {
	if err := validateShape(KindFillBlank, text); err != nil {
		return nil, &ErrSchemaParse{Kind: KindFillBlank, Err: err}
	}

	var q FillBlankQuestion
	if err := json.Unmarshal([]byte(text), &q); err != nil {
		return nil, &ErrSchemaParse{Kind: KindFillBlank, Err: err}
	}

	if !strings.Contains(q.Text, BlankMarker) {
		return nil, &ErrDomainInvariant{
			Kind:    KindFillBlank,
			Message: fmt.Sprintf("question must contain the blank marker %q", BlankMarker),
		}
	}

	return &q, nil
}

// Parse dispatches to the parser for kind.
func Parse(kind Kind, text string) (Question, error) {
	var (
		q   Question
		err error
	)
	switch kind {
	case KindMCQ:
		q, err = ParseMultipleChoice(text)
	case KindFillBlank:
		q, err = ParseFillBlank(text)
	default:
		return nil, &ErrPrecondition{Field: "kind", Reason: fmt.Sprintf("unknown question kind %q", kind)}
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}
