package quiz

import (
	"errors"
	"fmt"
)

// State is the lifecycle phase of a Session.
type State int

const (
	StateEmpty      State = iota // No questions
	StateGenerating              // Generate in flight
	StateReady                   // Questions held, no answers recorded
	StateAnswering               // At least one answer recorded since the last evaluation
	StateSubmitted               // Evaluated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	case StateAnswering:
		return "answering"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNoQuiz is returned when an operation needs questions and the
	// session has none.
	ErrNoQuiz = errors.New("no quiz has been generated")

	// ErrBusy is returned when a mutation is attempted while Generate is
	// in flight.
	ErrBusy = errors.New("quiz generation in progress")
)

// ErrInvalidAnswerIndex is returned by RecordAnswer for an index outside
// the question list.
type ErrInvalidAnswerIndex struct {
	Index int
	Count int
}

func (e *ErrInvalidAnswerIndex) Error() string {
	return fmt.Sprintf("answer index %d out of range [0, %d)", e.Index, e.Count)
}
