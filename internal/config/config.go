package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizgen/internal/llm"
)

// Config is the runtime configuration assembled from defaults, an optional
// .env file and the environment.
type Config struct {
	// Provider is the default provider name.
	Provider string

	// APIKeys holds fallback keys per provider. Keys supplied at request
	// time take precedence.
	APIKeys map[llm.ProviderName]string

	// Model overrides the provider's default model when set.
	Model string

	// Models lists the models offered per provider; the first is the default.
	Models map[llm.ProviderName][]string

	MaxRetries  int
	Temperature float64

	// Timeout bounds a single provider call.
	Timeout time.Duration

	// Concurrency is how many questions are generated in parallel.
	Concurrency int

	// OutputDir receives CSV exports.
	OutputDir string

	// DBPath overrides the SQLite location. Empty means store.DefaultDBPath.
	DBPath string
}

// Default returns a Config with the built-in defaults.
func Default() Config {
	return Config{
		Provider: string(llm.ProviderGroq),
		APIKeys:  map[llm.ProviderName]string{},
		Models: map[llm.ProviderName][]string{
			llm.ProviderGroq:      {"llama-3.1-8b-instant", "llama-3.1-70b-versatile", "mixtral-8x7b-32768"},
			llm.ProviderOpenAI:    {"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"},
			llm.ProviderAnthropic: {"claude-haiku", "claude-sonnet"},
			llm.ProviderGemini:    {"gemini-flash", "gemini-pro"},
		},
		MaxRetries:  3,
		Temperature: 0.9,
		Timeout:     60 * time.Second,
		Concurrency: 1,
		OutputDir:   "results",
	}
}

// apiKeyEnv maps each provider to the variable holding its fallback key.
var apiKeyEnv = map[llm.ProviderName]string{
	llm.ProviderGroq:      "GROQ_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then builds a Config from it. Missing files are
// ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to defaults for unset
// values. Malformed numbers and durations are errors.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if p := getenv("QUIZGEN_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for p, env := range apiKeyEnv {
		if k := strings.TrimSpace(getenv(env)); k != "" {
			cfg.APIKeys[p] = k
		}
	}
	if m := getenv("QUIZGEN_MODEL"); m != "" {
		cfg.Model = m
	}

	var err error
	if v := getenv("QUIZGEN_MAX_RETRIES"); v != "" {
		if cfg.MaxRetries, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("QUIZGEN_MAX_RETRIES: %w", err)
		}
	}
	if v := getenv("QUIZGEN_TEMPERATURE"); v != "" {
		if cfg.Temperature, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("QUIZGEN_TEMPERATURE: %w", err)
		}
	}
	if v := getenv("QUIZGEN_TIMEOUT"); v != "" {
		if cfg.Timeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("QUIZGEN_TIMEOUT: %w", err)
		}
	}
	if v := getenv("QUIZGEN_CONCURRENCY"); v != "" {
		if cfg.Concurrency, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("QUIZGEN_CONCURRENCY: %w", err)
		}
	}
	if d := getenv("QUIZGEN_OUTPUT_DIR"); d != "" {
		cfg.OutputDir = d
	}
	if p := getenv("QUIZGEN_DB"); p != "" {
		cfg.DBPath = p
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges and the provider name. API keys are checked at
// generation time since they may be supplied per request.
func (c Config) Validate() error {
	if _, err := llm.ParseProviderName(c.Provider); err != nil {
		return err
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Concurrency < 1 || c.Concurrency > 10 {
		return fmt.Errorf("concurrency must be between 1 and 10, got %d", c.Concurrency)
	}
	return nil
}

// APIKey returns the fallback key for provider, or "".
func (c Config) APIKey(provider llm.ProviderName) string {
	return c.APIKeys[provider]
}

// APIKeyEnv returns the environment variable that holds provider's key.
func APIKeyEnv(provider llm.ProviderName) string {
	return apiKeyEnv[provider]
}

// ModelFor returns the configured model override, or the first model
// offered for provider.
func (c Config) ModelFor(provider llm.ProviderName) string {
	if c.Model != "" {
		return c.Model
	}
	if models := c.Models[provider]; len(models) > 0 {
		return models[0]
	}
	return llm.DefaultModel(provider)
}
