package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicMaxTokens is used when neither the request nor the options set a
// budget; the Messages API requires one.
const anthropicMaxTokens = 1024

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider implements Provider using the Anthropic SDK.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(opts Options) (*AnthropicProvider, error) {
	if opts.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: string(ProviderAnthropic)}
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		// Retries belong to the question generator.
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := anthropic.NewClient(reqOpts...)

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicMaxTokens
	}

	return &AnthropicProvider{
		client:      &client,
		model:       resolveModel(opts.Model, anthropicModels),
		temperature: opts.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.maxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages:  buildAnthropicMessages(req.Messages),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	if p.temperature > 0 {
		// The Messages API caps temperature at 1.0.
		params.Temperature = anthropic.Float(min(p.temperature, 1.0))
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &ErrProviderInvocation{Provider: p.Name(), Err: mapAnthropicError(err)}
	}

	text, err := extractAnthropicText(msg)
	if err != nil {
		return nil, &ErrProviderInvocation{Provider: p.Name(), Err: err}
	}

	return &Response{
		Text:       text,
		Usage:      mapAnthropicUsage(msg.Usage),
		Model:      string(msg.Model),
		StopReason: mapAnthropicStopReason(msg.StopReason),
	}, nil
}

func (p *AnthropicProvider) Name() string {
	return string(ProviderAnthropic)
}

func (p *AnthropicProvider) ModelID() string {
	return p.model
}

func buildAnthropicMessages(msgs []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(msgs))
	for i, m := range msgs {
		role := anthropic.MessageParamRoleUser
		if m.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		out[i] = anthropic.MessageParam{
			Role: role,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(m.Content),
			},
		}
	}
	return out
}

func extractAnthropicText(msg *anthropic.Message) (string, error) {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &ErrInvalidResponse{
		Err: fmt.Errorf("no text content in Anthropic response"),
	}
}

func mapAnthropicUsage(u anthropic.Usage) Usage {
	return Usage{
		InputTokens:  int(u.InputTokens),
		OutputTokens: int(u.OutputTokens),
		TotalTokens:  int(u.InputTokens + u.OutputTokens),
	}
}

func mapAnthropicStopReason(reason anthropic.StopReason) string {
	switch reason {
	case "max_tokens":
		return "max_tokens"
	default:
		return "end"
	}
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return &ErrAuthentication{Err: err}
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
