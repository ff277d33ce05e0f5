package llm

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels is empty: Groq model IDs are used as-is.
var groqModels = map[string]string{}

// GroqProvider wraps OpenAIProvider with Groq-specific defaults.
// Groq exposes an OpenAI-compatible API, so the underlying SDK is reused.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(opts Options) (*GroqProvider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGroqBaseURL
	}

	inner, err := newOpenAICompatible(string(ProviderGroq), opts, groqModels)
	if err != nil {
		return nil, err
	}

	return &GroqProvider{OpenAIProvider: inner}, nil
}
