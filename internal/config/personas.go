package config

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/questiongen"
)

// Persona is a preset tone for generated questions.
type Persona struct {
	Name        string
	Icon        string
	Description string

	// Style is interpolated into prompts. Empty for CustomPersona.
	Style string
}

// CustomPersona is the persona whose style the user writes.
const CustomPersona = "Custom"

// DefaultPersona is selected when none is given.
const DefaultPersona = "Friendly Tutor"

// Personas lists the presets in display order.
var Personas = []Persona{
	{
		Name:        "Friendly Tutor",
		Icon:        "🎓",
		Description: "An encouraging, patient tutor who provides helpful hints and context. Focuses on understanding concepts.",
		Style:       "encouraging and supportive with clear explanations",
	},
	{
		Name:        "Strict Examiner",
		Icon:        "📝",
		Description: "A formal, challenging examiner who tests precise knowledge and details with no-nonsense questions.",
		Style:       "formal and challenging, testing precise knowledge",
	},
	{
		Name:        "Playful Coach",
		Icon:        "🎮",
		Description: "A fun, gamified coach who uses analogies and real-world examples to make learning engaging.",
		Style:       "fun and engaging with real-world examples and analogies",
	},
	{
		Name:        CustomPersona,
		Icon:        "✨",
		Description: "Define your own persona for a unique learning experience.",
	},
}

// FindPersona matches a persona by name, ignoring case and treating
// dashes and underscores as spaces ("strict-examiner" works).
func FindPersona(name string) (Persona, bool) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(name))
	for _, p := range Personas {
		if strings.EqualFold(p.Name, norm) {
			return p, true
		}
	}
	return Persona{}, false
}

// ResolvePersonaStyle returns the prompt style for persona name. The
// custom persona requires non-blank custom text. An empty name yields
// the default style.
func ResolvePersonaStyle(name, custom string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return questiongen.DefaultPersonaStyle, nil
	}

	p, ok := FindPersona(name)
	if !ok {
		return "", &questiongen.ErrPrecondition{
			Field:  "persona",
			Reason: fmt.Sprintf("%q is not a known persona", name),
		}
	}

	if p.Name == CustomPersona {
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", &questiongen.ErrPrecondition{
				Field:  "custom persona",
				Reason: "description must not be empty",
			}
		}
		return custom, nil
	}

	return p.Style, nil
}
