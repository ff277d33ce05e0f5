package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported providers and their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-10s  %-18s  %-4s  %s\n", "Provider", "Key variable", "Key", "Models")
		fmt.Println(strings.Repeat("─", 90))
		for _, p := range llm.SupportedProviders {
			key := "no"
			if cfg.APIKey(p) != "" {
				key = "yes"
			}
			fmt.Printf("%-10s  %-18s  %-4s  %s\n",
				p, config.APIKeyEnv(p), key, strings.Join(cfg.Models[p], ", "))
		}
		return nil
	},
}
