package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseProviderName(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderName
		wantErr bool
	}{
		{"groq", ProviderGroq, false},
		{"Groq", ProviderGroq, false},
		{"OpenAI", ProviderOpenAI, false},
		{" anthropic ", ProviderAnthropic, false},
		{"gemini", ProviderGemini, false},
		{"mistral", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProviderName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseProviderName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseProviderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewProvider_UnsupportedFailsSynchronously(t *testing.T) {
	_, err := NewProvider(context.Background(), "cohere", Options{APIKey: "k"}, nil)
	var unsupported *ErrUnsupportedProvider
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected ErrUnsupportedProvider, got: %T (%v)", err, err)
	}
	if unsupported.Name != "cohere" {
		t.Fatalf("expected name 'cohere', got %q", unsupported.Name)
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	for _, name := range []string{"groq", "openai", "anthropic", "gemini"} {
		_, err := NewProvider(context.Background(), name, Options{Model: "m"}, nil)
		var missing *ErrMissingAPIKey
		if !errors.As(err, &missing) {
			t.Fatalf("%s: expected ErrMissingAPIKey, got: %T (%v)", name, err, err)
		}
	}
}

func TestNewProvider_Groq(t *testing.T) {
	p, err := NewProvider(context.Background(), "Groq", Options{
		APIKey:  "gsk-test",
		Model:   "llama-3.1-8b-instant",
		Timeout: time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "groq" {
		t.Fatalf("expected name 'groq', got %q", p.Name())
	}
	if p.ModelID() != "llama-3.1-8b-instant" {
		t.Fatalf("expected model 'llama-3.1-8b-instant', got %q", p.ModelID())
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("expected timeout wrapper, got %T", p)
	}
}

func TestNewProvider_ResolvesFriendlyModel(t *testing.T) {
	p, err := NewProvider(context.Background(), "anthropic", Options{APIKey: "sk", Model: "claude-haiku"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Fatalf("unexpected model: %q", p.ModelID())
	}
}

func TestDefaultModel(t *testing.T) {
	for _, p := range SupportedProviders {
		if DefaultModel(p) == "" {
			t.Errorf("no default model for %s", p)
		}
	}
}
