package questiongen

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean json", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n\t", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with outer whitespace", "\n\n```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		{"opening fence only", "```json\n{\"a\":1}", `{"a":1}`},
		{"closing fence only", "{\"a\":1}\n```", `{"a":1}`},
		{"nested fences", "```json\n```json\n{\"a\":1}\n```\n```", `{"a":1}`},
		{"prose is kept", "Here you go: {\"a\":1}", `Here you go: {"a":1}`},
		{"inner backticks kept", "{\"a\":\"use ``` here\"}", "{\"a\":\"use ``` here\"}"},
		{"empty", "", ""},
		{"only fences", "``````", ""},
		{"single backtick", "`", "`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"`",
		"``",
		"```",
		"````",
		"```json",
		"```json```",
		"```json\n```json\n{}\n```\n```",
		"``` ```json {} ``` ```",
		"{\"question\":\"q\"}",
		"  ```json\n{\"question\":\"q\"}\n```  ",
		"text ``` more ```",
		"```JSON\n{}\n```",
		"\t```\n```\n```\n",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestSanitizeNoOpOnCleanJSON(t *testing.T) {
	docs := []string{
		`{"question":"What is the capital of France?","options":["London","Berlin","Paris","Madrid"],"correct_answer":"Paris"}`,
		"\n  {\"question\": \"The capital of France is _____.\", \"answer\": \"Paris\"}  \n",
		`[]`,
	}
	for _, doc := range docs {
		if got, want := Sanitize(doc), strings.TrimSpace(doc); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", doc, got, want)
		}
	}
}
