package quiz

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizgen/internal/questiongen"
)

// MaxConcurrency bounds parallel question generation.
const MaxConcurrency = questiongen.MaxQuestions

// Generator produces one validated question per call.
type Generator interface {
	Generate(ctx context.Context, kind questiongen.Kind, topic string, difficulty questiongen.Difficulty) (questiongen.Question, error)
}

// Options configures a Session.
type Options struct {
	// Concurrency is the number of questions generated in parallel.
	// Values below 1 mean sequential generation.
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// ResultRow is one graded question in generation order.
type ResultRow struct {
	QuestionNumber int
	Question       string
	CorrectAnswer  string
	UserAnswer     string
	IsCorrect      bool
}

// Score summarizes the last evaluation.
type Score struct {
	Correct int
	Total   int
	Percent float64
}

// Session holds one quiz: its questions, recorded answers and grades.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	opts Options

	id         string
	topic      string
	kind       questiongen.Kind
	difficulty questiongen.Difficulty
	createdAt  time.Time

	questions []questiongen.Question
	answers   map[int]string
	correct   []bool
	submitted bool

	generating bool
}

// NewSession creates an empty Session.
func NewSession(opts Options) *Session {
	opts.Concurrency = min(max(opts.Concurrency, 1), MaxConcurrency)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{opts: opts, answers: make(map[int]string)}
}

// Generate replaces the session's questions with count freshly generated
// ones. It is all-or-nothing: if any question fails, the first error is
// returned, in-flight siblings are cancelled, and the previous questions,
// answers and grades are left untouched.
func (s *Session) Generate(ctx context.Context, gen Generator, topic string, kind questiongen.Kind, difficulty questiongen.Difficulty, count int) error {
	req := questiongen.GenerationRequest{
		Topic:      topic,
		Difficulty: difficulty,
		Kind:       kind,
		Count:      count,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrBusy
	}
	s.generating = true
	s.mu.Unlock()

	questions, err := generateAll(ctx, gen, req, s.opts.Concurrency)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		return err
	}

	s.id = uuid.NewString()
	s.topic = topic
	s.kind = kind
	s.difficulty = difficulty
	s.createdAt = s.opts.Now()
	s.questions = questions
	s.answers = make(map[int]string)
	s.correct = make([]bool, len(questions))
	s.submitted = false
	return nil
}

// generateAll runs up to limit generations at once and keeps results in
// request order.
func generateAll(ctx context.Context, gen Generator, req questiongen.GenerationRequest, limit int) ([]questiongen.Question, error) {
	questions := make([]questiongen.Question, req.Count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range req.Count {
		g.Go(func() error {
			// A sibling already failed.
			if err := gctx.Err(); err != nil {
				return err
			}
			q, err := gen.Generate(gctx, req.Kind, req.Topic, req.Difficulty)
			if err != nil {
				return err
			}
			questions[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return questions, nil
}

// RecordAnswer stores answer for the question at index (0-based),
// replacing any earlier answer. Answer content is not validated.
// Recording after evaluation moves the session back to answering.
func (s *Session) RecordAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrBusy
	}
	if len(s.questions) == 0 {
		return ErrNoQuiz
	}
	if index < 0 || index >= len(s.questions) {
		return &ErrInvalidAnswerIndex{Index: index, Count: len(s.questions)}
	}

	s.answers[index] = answer
	s.submitted = false
	return nil
}

// Evaluate grades every question against the recorded answers. An absent
// answer is incorrect. Calling it again recomputes from current answers.
func (s *Session) Evaluate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrBusy
	}
	if len(s.questions) == 0 {
		return ErrNoQuiz
	}

	for i, q := range s.questions {
		s.correct[i] = q.IsCorrect(s.answers[i])
	}
	s.submitted = true
	return nil
}

// Results returns one row per question in generation order. Before any
// evaluation every IsCorrect is false.
func (s *Session) Results() []ResultRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultsLocked()
}

func (s *Session) resultsLocked() []ResultRow {
	return lo.Map(s.questions, func(q questiongen.Question, i int) ResultRow {
		return ResultRow{
			QuestionNumber: i + 1,
			Question:       q.QuestionText(),
			CorrectAnswer:  q.ExpectedAnswer(),
			UserAnswer:     s.answers[i],
			IsCorrect:      s.correct[i],
		}
	})
}

// Score returns the grade totals from the last evaluation.
func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.questions)
	correct := lo.Count(s.correct, true)
	var pct float64
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}
	return Score{Correct: correct, Total: total, Percent: pct}
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.generating:
		return StateGenerating
	case len(s.questions) == 0:
		return StateEmpty
	case s.submitted:
		return StateSubmitted
	case len(s.answers) > 0:
		return StateAnswering
	default:
		return StateReady
	}
}

// Questions returns the current questions in generation order.
func (s *Session) Questions() []questiongen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.questions)
}

// Answer returns the recorded answer for index and whether one exists.
func (s *Session) Answer(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[index]
	return a, ok
}

// Submitted reports whether the current answers have been evaluated.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// ID returns the identifier assigned on the last successful Generate.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Topic returns the topic of the current questions.
func (s *Session) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// Kind returns the question kind of the current questions.
func (s *Session) Kind() questiongen.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// Difficulty returns the difficulty of the current questions.
func (s *Session) Difficulty() questiongen.Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty
}

// CreatedAt returns when the current questions were generated.
func (s *Session) CreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdAt
}
