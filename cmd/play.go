package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/abhisek/quizgen/internal/app"
	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/questiongen"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/ui/theme"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Generate a quiz and answer it in the terminal",
	Long: `Generate a quiz on a topic, answer it interactively, then see your score.

Results are exported to CSV and saved to the local history database.
API keys are read from --api-key, the environment or a .env file.`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "LLM provider: groq, openai, anthropic or gemini (default from QUIZGEN_PROVIDER or groq)")
	cmd.Flags().String("model", "", "Model name (default: the provider's first model)")
	cmd.Flags().String("api-key", "", "API key for the provider (default from <PROVIDER>_API_KEY)")
	cmd.Flags().String("persona", config.DefaultPersona, "Teaching persona (see `quizgen personas`)")
	cmd.Flags().String("custom-persona", "", "Persona description when --persona=Custom")
	cmd.Flags().String("topic", "Cricket", "Quiz topic")
	cmd.Flags().String("kind", string(questiongen.KindMCQ), "Question kind: mcq or fill_blank")
	cmd.Flags().String("difficulty", string(questiongen.DifficultyMedium), "Difficulty: Easy, Medium or Hard")
	cmd.Flags().IntP("count", "n", 3, "Number of questions (1-10)")
	cmd.Flags().Int("concurrency", 0, "Questions generated in parallel (default from QUIZGEN_CONCURRENCY or 1)")
	cmd.Flags().String("out", "", "Directory for the CSV export (default from QUIZGEN_OUTPUT_DIR or results)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	req, err := playRequest(cmd)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if req.APIKey == "" {
		if err := promptAPIKey(in, out, cfg, &req); err != nil {
			return err
		}
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}
	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	a := app.New(app.Options{
		Config:    cfg,
		EventRepo: st.EventRepo(),
		Logger:    newLogger(cmd),
	})

	resolved, err := a.Resolve(req)
	if err != nil {
		return err
	}

	session := quiz.NewSession(quiz.Options{Concurrency: concurrency})

	for {
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("🧠 %s quiz: %s", req.Kind.Label(), req.Topic)))
		fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("%s · %s · %s · %d question(s)",
			resolved.Provider, resolved.Model, req.Difficulty, req.Count)))
		fmt.Fprintln(out, theme.Hint.Render("Generating questions..."))

		if _, err := a.GenerateQuestions(ctx, session, req); err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}
		fmt.Fprintln(out)

		if !askQuestions(in, out, session) {
			fmt.Fprintln(out, theme.Hint.Render("(input closed)"))
		}

		if err := session.Evaluate(); err != nil {
			return fmt.Errorf("evaluate quiz: %w", err)
		}
		printResults(out, session)

		if path, err := session.ExportCSV(outDir); err != nil {
			fmt.Fprintln(out, theme.Warning.Render("Could not export results: "+err.Error()))
		} else if path != "" {
			fmt.Fprintln(out, theme.Hint.Render("Results saved to "+path))
		}

		if err := app.SaveHistory(ctx, st.ResultRepo(), session, string(resolved.Provider), resolved.Model); err != nil {
			fmt.Fprintln(out, theme.Warning.Render("Could not save quiz history: "+err.Error()))
		}

		if !confirm(in, out, "Generate another quiz with the same settings? [y/N] ") {
			return nil
		}
		fmt.Fprintln(out)
	}
}

// playRequest reads the play flags into an app.Request.
func playRequest(cmd *cobra.Command) (app.Request, error) {
	f := cmd.Flags()
	provider, _ := f.GetString("provider")
	model, _ := f.GetString("model")
	apiKey, _ := f.GetString("api-key")
	persona, _ := f.GetString("persona")
	custom, _ := f.GetString("custom-persona")
	topic, _ := f.GetString("topic")
	kindVal, _ := f.GetString("kind")
	diffVal, _ := f.GetString("difficulty")
	count, _ := f.GetInt("count")

	kind, err := questiongen.ParseKind(kindVal)
	if err != nil {
		return app.Request{}, err
	}
	difficulty, err := questiongen.ParseDifficulty(diffVal)
	if err != nil {
		return app.Request{}, err
	}

	return app.Request{
		Provider:      provider,
		APIKey:        strings.TrimSpace(apiKey),
		Model:         model,
		Persona:       persona,
		CustomPersona: custom,
		Topic:         topic,
		Kind:          kind,
		Difficulty:    difficulty,
		Count:         count,
	}, nil
}

// promptAPIKey asks for a key when neither the flag nor the environment
// supplies one. The key is never echoed back or logged.
func promptAPIKey(in *bufio.Scanner, out io.Writer, cfg config.Config, req *app.Request) error {
	name := req.Provider
	if name == "" {
		name = cfg.Provider
	}
	provider, err := llm.ParseProviderName(name)
	if err != nil {
		return err
	}
	if cfg.APIKey(provider) != "" {
		return nil
	}

	fmt.Fprintf(out, "%s API key (or set %s): ", provider, config.APIKeyEnv(provider))
	if in.Scan() {
		req.APIKey = strings.TrimSpace(in.Text())
	}
	return nil
}

// askQuestions walks the user through every question. It returns false if
// input ended early; remaining questions stay unanswered.
func askQuestions(in *bufio.Scanner, out io.Writer, s *quiz.Session) bool {
	questions := s.Questions()
	for i, q := range questions {
		fmt.Fprintln(out, theme.QuestionHeader.Render(fmt.Sprintf("── Question %d/%d ──", i+1, len(questions))))
		fmt.Fprintln(out, theme.Body.Render(q.QuestionText()))

		var options []string
		if mcq, ok := q.(*questiongen.MultipleChoiceQuestion); ok {
			options = mcq.Options
			for j, opt := range options {
				fmt.Fprintf(out, "  %s %s\n", theme.OptionLabel.Render(optionLetter(j)+")"), opt)
			}
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !in.Scan() {
			return false
		}
		raw := strings.TrimSpace(in.Text())
		if raw == "" {
			fmt.Fprintln(out, theme.Hint.Render("(skipped)"))
			fmt.Fprintln(out)
			continue
		}

		answer := raw
		if options != nil {
			answer = resolveChoice(raw, options)
		}
		// Index is always in range here.
		_ = s.RecordAnswer(i, answer)
		fmt.Fprintln(out)
	}
	return true
}

// resolveChoice maps a letter (A-D) or number (1-4) to the option text.
// Anything else is taken as the answer text itself.
func resolveChoice(input string, options []string) string {
	if len(input) == 1 {
		c := strings.ToUpper(input)[0]
		if c >= 'A' && int(c-'A') < len(options) {
			return options[c-'A']
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt
		}
	}
	return input
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}

func printResults(out io.Writer, s *quiz.Session) {
	fmt.Fprintln(out, theme.Title.Render("📊 Results"))
	for _, r := range s.Results() {
		answer := r.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		body := fmt.Sprintf("%s Q%d. %s\nYour answer: %s\nCorrect answer: %s",
			theme.Mark(r.IsCorrect), r.QuestionNumber, r.Question, answer, r.CorrectAnswer)
		fmt.Fprintln(out, theme.Card.Render(body))
	}

	score := s.Score()
	fmt.Fprintf(out, "\nScore: %s\n\n", theme.Score(score.Correct, score.Total, score.Percent))
}

func confirm(in *bufio.Scanner, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	if !in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// newLogger logs to stderr: attempts and retries with --verbose, errors
// only otherwise.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelError
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
