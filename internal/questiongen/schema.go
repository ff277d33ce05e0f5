package questiongen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSchemas holds the structural JSON schema per question kind.
// Count and membership rules are checked separately as domain invariants.
var questionSchemas = map[Kind]map[string]any{
	KindMCQ: {
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"correct_answer": map[string]any{"type": "string"},
		},
		"required": []any{"question", "options", "correct_answer"},
	},
	KindFillBlank: {
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"answer":   map[string]any{"type": "string"},
		},
		"required": []any{"question", "answer"},
	},
}

// schemaCache caches compiled JSON schemas by kind.
var schemaCache sync.Map // map[Kind]*jsonschema.Schema

// validateShape checks that text is a single JSON document matching the
// structural schema for kind.
func validateShape(kind Kind, text string) error {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(kind)
	if err != nil {
		return err
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(kind Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := questionSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for question kind %q", kind)
	}

	// The compiler wants a decoded JSON value; round-trip to normalize
	// Go ints and nested maps.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", kind)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", kind, err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}
