package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
	"github.com/abhisek/quizgen/internal/ui/theme"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past quiz results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		quizzes, err := s.ResultRepo().RecentQuizzes(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query quizzes: %w", err)
		}

		if len(quizzes) == 0 {
			fmt.Println("No quizzes taken yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-24s  %-10s  %-6s  %s\n",
			"Session", "Taken", "Topic", "Kind", "Level", "Score")
		fmt.Println(strings.Repeat("─", 112))

		for _, q := range quizzes {
			fmt.Printf("%-36s  %-19s  %-24s  %-10s  %-6s  %d/%d\n",
				q.SessionID,
				q.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(q.Topic, 24),
				q.Kind,
				q.Difficulty,
				q.Correct,
				q.Total,
			)
		}

		answered := lo.SumBy(quizzes, func(q store.QuizSummary) int { return q.Total })
		correct := lo.SumBy(quizzes, func(q store.QuizSummary) int { return q.Correct })
		if answered > 0 {
			fmt.Printf("\n%d quizzes, %d/%d correct (%.1f%%)\n",
				len(quizzes), correct, answered, float64(correct)/float64(answered)*100)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <session-id>",
	Short: "Show the graded questions of a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ResultRepo().QuizRows(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query quiz: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("quiz %s not found", args[0])
		}

		for _, r := range rows {
			fmt.Printf("%s Q%d. %s\n", theme.Mark(r.IsCorrect), r.QuestionNumber, r.Question)
			fmt.Printf("   Your answer:    %s\n", r.UserAnswer)
			fmt.Printf("   Correct answer: %s\n\n", r.CorrectAnswer)
		}

		correct := lo.CountBy(rows, func(r store.ResultRow) bool { return r.IsCorrect })
		pct := float64(correct) / float64(len(rows)) * 100
		fmt.Printf("Score: %s\n", theme.Score(correct, len(rows), pct))
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Write a past quiz to CSV (stdout by default)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.ResultRepo().QuizRows(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("query quiz: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("quiz %s not found", args[0])
		}

		w := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			w = f
		}

		return quiz.WriteCSV(w, lo.Map(rows, func(r store.ResultRow, _ int) quiz.ResultRow {
			return quiz.ResultRow{
				QuestionNumber: r.QuestionNumber,
				Question:       r.Question,
				CorrectAnswer:  r.CorrectAnswer,
				UserAnswer:     r.UserAnswer,
				IsCorrect:      r.IsCorrect,
			}
		}))
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
	historyExportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
	historyCmd.AddCommand(historyExportCmd)
}
