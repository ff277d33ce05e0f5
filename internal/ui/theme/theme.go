package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	QuestionHeader = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// States
var (
	OptionLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Mark renders the pass/fail glyph for a graded answer.
func Mark(correct bool) string {
	if correct {
		return Correct.Render("✅")
	}
	return Incorrect.Render("❌")
}

// Score renders "correct/total (pct%)", green for a pass mark and rose
// otherwise.
func Score(correct, total int, percent float64) string {
	s := fmt.Sprintf("%d/%d (%.1f%%)", correct, total, percent)
	if percent >= 50 {
		return Correct.Render(s)
	}
	return Incorrect.Render(s)
}
