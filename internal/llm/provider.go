package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// One implementation exists per supported vendor; callers never see the
// vendor SDK types.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw text reply.
	// Sampling parameters (model, temperature) are fixed when the provider
	// is constructed. Failures are reported as *ErrProviderInvocation.
	// Implementations never retry.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider identifier, e.g. "groq".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation. Quiz generation is single-turn, so this
	// normally holds one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	// Zero means the provider default.
	MaxTokens int
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn Request from prompt text.
func UserPrompt(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion text, exactly as returned by the provider.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
