package questiongen

import (
	"fmt"
	"strings"
)

// BlankMarker is the substring every fill-in-the-blank question must contain.
const BlankMarker = "___"

// MaxQuestions is the upper bound on questions per generation request.
const MaxQuestions = 10

// DefaultPersonaStyle is used when no persona style is supplied.
const DefaultPersonaStyle = "neutral and educational"

// Kind identifies the question variant.
type Kind string

const (
	KindMCQ       Kind = "mcq"
	KindFillBlank Kind = "fill_blank"
)

// Label returns the human readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindMCQ:
		return "Multiple Choice"
	case KindFillBlank:
		return "Fill in the Blank"
	default:
		return string(k)
	}
}

// ParseKind accepts the canonical kind names and the labels shown to users.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "multiple choice", "multiple-choice", "multiple_choice":
		return KindMCQ, nil
	case "fill_blank", "fill-blank", "fill in the blank", "fill-in-the-blank", "blank":
		return KindFillBlank, nil
	default:
		return "", fmt.Errorf("unknown question kind %q (want mcq or fill_blank)", s)
	}
}

// Difficulty is the requested question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the valid difficulties in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty matches a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// Question is a validated, immutable quiz question.
type Question interface {
	// Kind returns the question variant.
	Kind() Kind

	// QuestionText returns the text shown to the user.
	QuestionText() string

	// ExpectedAnswer returns the canonical correct answer.
	ExpectedAnswer() string

	// IsCorrect grades a recorded answer. An empty answer is never correct.
	IsCorrect(answer string) bool
}

// MultipleChoiceQuestion has exactly four options, one of which is
// byte-for-byte equal to CorrectAnswer.
type MultipleChoiceQuestion struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

func (q *MultipleChoiceQuestion) Kind() Kind             { return KindMCQ }
func (q *MultipleChoiceQuestion) QuestionText() string   { return q.Text }
func (q *MultipleChoiceQuestion) ExpectedAnswer() string { return q.CorrectAnswer }

func (q *MultipleChoiceQuestion) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectAnswer
}

// FillBlankQuestion contains BlankMarker in Text.
type FillBlankQuestion struct {
	Text   string `json:"question"`
	Answer string `json:"answer"`
}

func (q *FillBlankQuestion) Kind() Kind             { return KindFillBlank }
func (q *FillBlankQuestion) QuestionText() string   { return q.Text }
func (q *FillBlankQuestion) ExpectedAnswer() string { return q.Answer }

// IsCorrect compares case-sensitively after trimming surrounding whitespace.
func (q *FillBlankQuestion) IsCorrect(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && answer == strings.TrimSpace(q.Answer)
}

// GenerationRequest describes one batch of questions to generate.
type GenerationRequest struct {
	Topic        string
	Difficulty   Difficulty
	Kind         Kind
	PersonaStyle string
	Count        int
}

// Validate checks the request before any provider call is made.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &ErrPrecondition{Field: "topic", Reason: "must not be empty"}
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return &ErrPrecondition{Field: "difficulty", Reason: err.Error()}
	}
	if r.Kind != KindMCQ && r.Kind != KindFillBlank {
		return &ErrPrecondition{Field: "kind", Reason: fmt.Sprintf("unknown question kind %q", r.Kind)}
	}
	if r.Count < 1 || r.Count > MaxQuestions {
		return &ErrPrecondition{Field: "count", Reason: fmt.Sprintf("must be between 1 and %d, got %d", MaxQuestions, r.Count)}
	}
	return nil
}
