package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/questiongen"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
)

// ProviderFactory builds a provider. llm.NewProvider satisfies it.
type ProviderFactory func(ctx context.Context, name string, opts llm.Options, eventRepo store.EventRepo) (llm.Provider, error)

// Options configures an App.
type Options struct {
	Config config.Config

	// EventRepo records provider calls. Nil disables recording.
	EventRepo store.EventRepo

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// NewProvider defaults to llm.NewProvider.
	NewProvider ProviderFactory
}

// App wires configuration, providers and the question generator to a
// quiz session.
type App struct {
	cfg         config.Config
	eventRepo   store.EventRepo
	logger      *slog.Logger
	newProvider ProviderFactory
}

// New creates an App.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.NewProvider == nil {
		opts.NewProvider = llm.NewProvider
	}
	return &App{
		cfg:         opts.Config,
		eventRepo:   opts.EventRepo,
		logger:      opts.Logger,
		newProvider: opts.NewProvider,
	}
}

// Request holds the user's choices for one quiz.
type Request struct {
	Provider string
	APIKey   string
	Model    string

	// Persona is a preset name; CustomPersona is the style text used
	// when Persona is config.CustomPersona.
	Persona       string
	CustomPersona string

	Topic      string
	Kind       questiongen.Kind
	Difficulty questiongen.Difficulty
	Count      int
}

// Resolved is a Request after defaults and validation.
type Resolved struct {
	Provider     llm.ProviderName
	Model        string
	PersonaStyle string
	Request      questiongen.GenerationRequest

	apiKey string
}

// Resolve applies configuration fallbacks and checks every precondition.
// It makes no network calls.
func (a *App) Resolve(req Request) (*Resolved, error) {
	name := req.Provider
	if name == "" {
		name = a.cfg.Provider
	}
	provider, err := llm.ParseProviderName(name)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = a.cfg.APIKey(provider)
	}
	if apiKey == "" {
		return nil, &questiongen.ErrPrecondition{
			Field:  "API key",
			Reason: fmt.Sprintf("is required for %s (pass --api-key or set %s)", provider, config.APIKeyEnv(provider)),
		}
	}

	if strings.TrimSpace(req.Topic) == "" {
		return nil, &questiongen.ErrPrecondition{Field: "topic", Reason: "must not be empty"}
	}

	style, err := config.ResolvePersonaStyle(req.Persona, req.CustomPersona)
	if err != nil {
		return nil, err
	}

	genReq := questiongen.GenerationRequest{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Kind:         req.Kind,
		PersonaStyle: style,
		Count:        req.Count,
	}
	if err := genReq.Validate(); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = a.cfg.ModelFor(provider)
	}

	return &Resolved{
		Provider:     provider,
		Model:        model,
		PersonaStyle: style,
		Request:      genReq,
		apiKey:       apiKey,
	}, nil
}

// GenerateQuestions fills session with freshly generated questions. It
// reports success and, on failure, the error to show the user. On failure
// the session keeps whatever it held before.
func (a *App) GenerateQuestions(ctx context.Context, session *quiz.Session, req Request) (bool, error) {
	r, err := a.Resolve(req)
	if err != nil {
		return false, err
	}

	provider, err := a.newProvider(ctx, string(r.Provider), llm.Options{
		APIKey:      r.apiKey,
		Model:       r.Model,
		Temperature: a.cfg.Temperature,
		Timeout:     a.cfg.Timeout,
	}, a.eventRepo)
	if err != nil {
		return false, err
	}

	qcfg := questiongen.DefaultConfig()
	qcfg.Retry.MaxAttempts = a.cfg.MaxRetries
	qcfg.PersonaStyle = r.PersonaStyle
	gen := questiongen.New(provider, qcfg, a.logger)

	a.logger.Info("generating quiz",
		"provider", r.Provider,
		"model", provider.ModelID(),
		"topic", r.Request.Topic,
		"kind", string(r.Request.Kind),
		"difficulty", string(r.Request.Difficulty),
		"count", r.Request.Count,
	)

	err = session.Generate(ctx, gen, r.Request.Topic, r.Request.Kind, r.Request.Difficulty, r.Request.Count)
	if err != nil {
		a.logger.Error("quiz generation failed", "error", err)
		return false, err
	}
	return true, nil
}

// SaveHistory stores the session's graded rows. Sessions that have not
// been evaluated are skipped.
func SaveHistory(ctx context.Context, repo store.ResultRepo, session *quiz.Session, provider, model string) error {
	if !session.Submitted() {
		return nil
	}

	rows := lo.Map(session.Results(), func(r quiz.ResultRow, _ int) store.ResultRow {
		return store.ResultRow{
			QuestionNumber: r.QuestionNumber,
			Question:       r.Question,
			CorrectAnswer:  r.CorrectAnswer,
			UserAnswer:     r.UserAnswer,
			IsCorrect:      r.IsCorrect,
		}
	})

	return repo.SaveQuiz(ctx, store.QuizRecord{
		SessionID:  session.ID(),
		CreatedAt:  session.CreatedAt(),
		Topic:      session.Topic(),
		Kind:       string(session.Kind()),
		Difficulty: string(session.Difficulty()),
		Provider:   provider,
		Model:      model,
		Rows:       rows,
	})
}
