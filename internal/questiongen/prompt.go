package questiongen

import (
	"fmt"
	"strings"
)

const mcqTemplate = `You are a quiz creator with a persona that is {persona_style}.

Generate a {difficulty} multiple-choice question about {topic} in your persona's style.

CRITICAL INSTRUCTIONS:
1. Return ONLY a valid JSON object - no title, no introduction, no explanation, no extra text
2. Do not wrap the JSON in markdown code blocks (no ` + "```json or ```" + `)
3. The 'correct_answer' field MUST contain the EXACT text of one of the four options
4. All four options must be strings in the options array

Required JSON structure:
{
    "question": "Your engaging question here",
    "options": ["First option", "Second option", "Third option", "Fourth option"],
    "correct_answer": "Second option"
}

IMPORTANT: The correct_answer value must be EXACTLY the same as one option (same capitalization, punctuation, spacing).

Example - Notice how 'Paris' appears EXACTLY the same in both options and correct_answer:
{
    "question": "What is the capital of France?",
    "options": ["London", "Berlin", "Paris", "Madrid"],
    "correct_answer": "Paris"
}

Now generate your JSON (ONLY the JSON, nothing else):`

const fillBlankTemplate = `You are a quiz creator with a persona that is {persona_style}.

Generate a {difficulty} fill-in-the-blank question about {topic} in your persona's style.

CRITICAL: You MUST return ONLY a valid JSON object. Do not include any title, introduction, or explanation.
Do not wrap the JSON in markdown code blocks. Return ONLY the raw JSON.

Required JSON format:
{
    "question": "A sentence with _____ marking where the blank should be (reflect your persona in wording)",
    "answer": "The correct word or phrase for the blank"
}

Example:
{
    "question": "The capital of France is _____.",
    "answer": "Paris"
}

Return ONLY the JSON object, nothing else:`

// BuildPrompt renders the template for kind. Substitution is literal and
// single-pass, so placeholder text inside an argument is left alone.
func BuildPrompt(kind Kind, topic string, difficulty Difficulty, personaStyle string) (string, error) {
	var tmpl string
	switch kind {
	case KindMCQ:
		tmpl = mcqTemplate
	case KindFillBlank:
		tmpl = fillBlankTemplate
	default:
		return "", fmt.Errorf("no prompt template for question kind %q", kind)
	}

	r := strings.NewReplacer(
		"{persona_style}", personaStyle,
		"{difficulty}", string(difficulty),
		"{topic}", topic,
	)
	return r.Replace(tmpl), nil
}
