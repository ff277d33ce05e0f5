package cmd

import (
	"fmt"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the teaching personas",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range config.Personas {
			name := p.Name
			if name == config.DefaultPersona {
				name += " (default)"
			}
			fmt.Printf("%s %s\n", p.Icon, theme.Title.Render(name))
			fmt.Printf("   %s\n", p.Description)
			if p.Style != "" {
				fmt.Printf("   %s\n", theme.Hint.Render("style: "+p.Style))
			} else {
				fmt.Printf("   %s\n", theme.Hint.Render("style: your --custom-persona text"))
			}
			fmt.Println()
		}
	},
}
