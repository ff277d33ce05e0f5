package questiongen

import (
	"errors"
	"slices"
	"testing"
)

func TestParseMultipleChoice(t *testing.T) {
	q, err := ParseMultipleChoice(`{
		"question": "What is the capital of France?",
		"options": ["London", "Berlin", "Paris", "Madrid"],
		"correct_answer": "Paris"
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "What is the capital of France?" {
		t.Errorf("text = %q", q.Text)
	}
	if len(q.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(q.Options))
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		t.Errorf("correct answer %q not in options", q.CorrectAnswer)
	}
	if q.Kind() != KindMCQ {
		t.Errorf("kind = %q", q.Kind())
	}
}

func TestParseMultipleChoiceExtraFieldsAllowed(t *testing.T) {
	_, err := ParseMultipleChoice(`{"question":"q","options":["a","b","c","d"],"correct_answer":"a","explanation":"because"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseMultipleChoiceSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `Sure! Here is your question.`},
		{"truncated", `{"question":"q","options":["a","b"`},
		{"trailing prose", `{"question":"q","options":["a","b","c","d"],"correct_answer":"a"} hope this helps`},
		{"array root", `["a","b","c","d"]`},
		{"missing question", `{"options":["a","b","c","d"],"correct_answer":"a"}`},
		{"missing options", `{"question":"q","correct_answer":"a"}`},
		{"missing correct answer", `{"question":"q","options":["a","b","c","d"]}`},
		{"empty question", `{"question":"","options":["a","b","c","d"],"correct_answer":"a"}`},
		{"options not array", `{"question":"q","options":"a,b,c,d","correct_answer":"a"}`},
		{"numeric option", `{"question":"q","options":["a","b","c",4],"correct_answer":"a"}`},
		{"numeric answer", `{"question":"q","options":["1","2","3","4"],"correct_answer":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMultipleChoice(tt.in)
			var perr *ErrSchemaParse
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ErrSchemaParse, got %T: %v", err, err)
			}
			if perr.Kind != KindMCQ {
				t.Errorf("kind = %q", perr.Kind)
			}
		})
	}
}

func TestParseMultipleChoiceDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"three options", `{"question":"q","options":["a","b","c"],"correct_answer":"a"}`},
		{"five options", `{"question":"q","options":["a","b","c","d","e"],"correct_answer":"a"}`},
		{"answer not in options", `{"question":"q","options":["a","b","c","d"],"correct_answer":"z"}`},
		{"case mismatch", `{"question":"q","options":["Paris","b","c","d"],"correct_answer":"paris"}`},
		{"whitespace mismatch", `{"question":"q","options":["Paris","b","c","d"],"correct_answer":"Paris "}`},
		{"duplicate options", `{"question":"q","options":["a","a","c","d"],"correct_answer":"a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMultipleChoice(tt.in)
			var derr *ErrDomainInvariant
			if !errors.As(err, &derr) {
				t.Fatalf("expected *ErrDomainInvariant, got %T: %v", err, err)
			}
			var perr *ErrSchemaParse
			if errors.As(err, &perr) {
				t.Error("domain error must not also be a schema error")
			}
		})
	}
}

func TestParseFillBlank(t *testing.T) {
	q, err := ParseFillBlank(`{"question":"The capital of France is _____.","answer":"Paris"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "Paris" {
		t.Errorf("answer = %q", q.Answer)
	}
	if q.Kind() != KindFillBlank {
		t.Errorf("kind = %q", q.Kind())
	}
}

func TestParseFillBlankErrors(t *testing.T) {
	_, err := ParseFillBlank(`{"question":"The capital of France is _____."}`)
	var perr *ErrSchemaParse
	if !errors.As(err, &perr) {
		t.Errorf("missing answer: expected *ErrSchemaParse, got %T", err)
	}

	_, err = ParseFillBlank(`not json`)
	if !errors.As(err, &perr) {
		t.Errorf("bad json: expected *ErrSchemaParse, got %T", err)
	}

	for _, text := range []string{"The capital of France is Paris.", "The capital of France is __."} {
		_, err = ParseFillBlank(`{"question":"` + text + `","answer":"Paris"}`)
		var derr *ErrDomainInvariant
		if !errors.As(err, &derr) {
			t.Errorf("%q: expected *ErrDomainInvariant, got %T", text, err)
		}
	}
}

func TestParseDispatch(t *testing.T) {
	q, err := Parse(KindFillBlank, `{"question":"A ___ B","answer":"x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(*FillBlankQuestion); !ok {
		t.Errorf("got %T, want *FillBlankQuestion", q)
	}

	q, err = Parse(KindMCQ, `{"question":"q","options":["a"],"correct_answer":"a"}`)
	if err == nil || q != nil {
		t.Errorf("expected nil question and error, got %v, %v", q, err)
	}

	if _, err := Parse(Kind("essay"), `{}`); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	mcq := &MultipleChoiceQuestion{
		Text:          "Who won the 1983 World Cup?",
		Options:       []string{"India", "Australia", "Pakistan", "England"},
		CorrectAnswer: "India",
	}
	if !mcq.IsCorrect("India") {
		t.Error("India should be correct")
	}
	for _, a := range []string{"", "india", " India", "Pakistan"} {
		if mcq.IsCorrect(a) {
			t.Errorf("%q should be incorrect", a)
		}
	}

	fb := &FillBlankQuestion{Text: "The capital of France is _____.", Answer: "Paris"}
	if !fb.IsCorrect("  Paris\n") {
		t.Error("trimmed Paris should be correct")
	}
	for _, a := range []string{"", "   ", "paris", "PARIS"} {
		if fb.IsCorrect(a) {
			t.Errorf("%q should be incorrect", a)
		}
	}
}
