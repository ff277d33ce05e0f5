package cmd

import (
	"fmt"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizgen",
	Short: "AI quiz generator",
	Long:  "quizgen: generate multiple-choice and fill-in-the-blank quizzes on any topic with Groq, OpenAI, Anthropic or Gemini.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZGEN_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a .env file with API keys and settings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log generation attempts to stderr")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the --env-file and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Load(envFile)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database it points at.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return st, cfg, nil
}
