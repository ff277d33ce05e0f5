package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizgen/internal/store"
)

// ProviderName identifies a supported LLM vendor.
type ProviderName string

const (
	ProviderGroq      ProviderName = "groq"
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
	ProviderGemini    ProviderName = "gemini"
)

// SupportedProviders lists every provider the factory can build, in the
// order they are offered to users.
var SupportedProviders = []ProviderName{
	ProviderGroq,
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderGemini,
}

// ParseProviderName matches name case-insensitively against the supported
// set, so "Groq" and "OpenAI" are accepted.
func ParseProviderName(name string) (ProviderName, error) {
	n := ProviderName(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range SupportedProviders {
		if p == n {
			return p, nil
		}
	}
	return "", &ErrUnsupportedProvider{Name: name}
}

// Options holds the fixed construction parameters of a provider.
type Options struct {
	APIKey      string
	Model       string
	Temperature float64

	// MaxTokens is the default response budget used when a Request leaves
	// MaxTokens unset.
	MaxTokens int

	// BaseURL overrides the vendor endpoint. Used by tests and by
	// OpenAI-compatible gateways.
	BaseURL string

	// Timeout bounds every Generate call. Zero disables the bound.
	Timeout time.Duration
}

// NewProvider creates a Provider by name. It fails synchronously for an
// unsupported name or a missing API key; no network call is made.
// The result is wrapped: caller → timeout → logging → base.
// eventRepo may be nil, in which case requests are not recorded.
func NewProvider(ctx context.Context, name string, opts Options, eventRepo store.EventRepo) (Provider, error) {
	pn, err := ParseProviderName(name)
	if err != nil {
		return nil, err
	}

	var base Provider
	switch pn {
	case ProviderGroq:
		base, err = NewGroqProvider(opts)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(opts)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(opts)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", pn, err)
	}

	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo)
	}
	return WithTimeout(p, opts.Timeout), nil
}

// DefaultModel returns the first model offered for a provider.
func DefaultModel(p ProviderName) string {
	switch p {
	case ProviderGroq:
		return "llama-3.1-8b-instant"
	case ProviderOpenAI:
		return "gpt-3.5-turbo"
	case ProviderAnthropic:
		return "claude-haiku"
	case ProviderGemini:
		return "gemini-flash"
	}
	return ""
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
