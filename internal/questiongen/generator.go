package questiongen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizgen/internal/llm"
)

// Generator produces validated questions from an LLM provider, retrying
// failed attempts. It is safe for concurrent use if the provider is.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates a Generator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Generator {
	if cfg.PersonaStyle == "" {
		cfg.PersonaStyle = DefaultPersonaStyle
	}
	if cfg.PreviewChars <= 0 {
		cfg.PreviewChars = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// PersonaStyle returns the persona style used in prompts.
func (g *Generator) PersonaStyle() string {
	return g.config.PersonaStyle
}

// GenerateMCQ produces one multiple-choice question.
func (g *Generator) GenerateMCQ(ctx context.Context, topic string, difficulty Difficulty) (*MultipleChoiceQuestion, error) {
	q, err := g.Generate(ctx, KindMCQ, topic, difficulty)
	if err != nil {
		return nil, err
	}
	return q.(*MultipleChoiceQuestion), nil
}

// GenerateFillBlank produces one fill-in-the-blank question.
func (g *Generator) GenerateFillBlank(ctx context.Context, topic string, difficulty Difficulty) (*FillBlankQuestion, error) {
	q, err := g.Generate(ctx, KindFillBlank, topic, difficulty)
	if err != nil {
		return nil, err
	}
	return q.(*FillBlankQuestion), nil
}

// Generate produces one question of kind. Retryable failures are retried
// up to the configured attempt count, after which an
// *ErrGenerationExhausted is returned.
func (g *Generator) Generate(ctx context.Context, kind Kind, topic string, difficulty Difficulty) (Question, error) {
	prompt, err := BuildPrompt(kind, topic, difficulty, g.config.PersonaStyle)
	if err != nil {
		return nil, &ErrPrecondition{Field: "kind", Reason: err.Error()}
	}

	ctx = llm.WithPurpose(ctx, purposeFor(kind))
	req := llm.UserPrompt(prompt)
	req.MaxTokens = g.config.MaxTokens

	log := g.logger.With("kind", string(kind), "topic", topic, "difficulty", string(difficulty))
	log.Debug("generating question", "persona", g.config.PersonaStyle, "provider", g.provider.Name())

	attempt := func(ctx context.Context) attemptResult {
		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return attemptResult{err: err}
		}
		res := attemptResult{raw: resp.Text, sanitized: Sanitize(resp.Text)}
		res.question, res.err = Parse(kind, res.sanitized)
		return res
	}

	onFailure := func(n, total int, res attemptResult) {
		log.Warn("question generation attempt failed",
			"attempt", n,
			"max_attempts", total,
			"error", res.err,
			"response_preview", preview(res.sanitized, g.config.PreviewChars),
		)
	}

	q, err := retry(ctx, kind, g.config.Retry, attempt, onFailure)
	if err != nil {
		log.Error("question generation failed", "error", err)
		return nil, err
	}

	log.Info("generated question")
	return q, nil
}

func purposeFor(kind Kind) string {
	switch kind {
	case KindMCQ:
		return "quiz-mcq"
	case KindFillBlank:
		return "quiz-fill-blank"
	default:
		return fmt.Sprintf("quiz-%s", kind)
	}
}

// preview truncates s to n runes for log output.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
