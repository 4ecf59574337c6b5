package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://docquiz-quiz.json"

// QuizSchema is the JSON schema a serialized Quiz must satisfy.
var QuizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{"easy", "medium", "hard"},
		},
		"requested": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"kind": map[string]any{
						"type": "string",
						"enum": []any{"multiple_choice", "true_false", "short_answer", "fill_blank"},
					},
					"prompt":         map[string]any{"type": "string", "minLength": 1},
					"correct_answer": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"text":       map[string]any{"type": "string"},
								"is_correct": map[string]any{"type": "boolean"},
							},
							"required":             []any{"text", "is_correct"},
							"additionalProperties": false,
						},
					},
					"explanation": map[string]any{"type": "string"},
					"points":      map[string]any{"type": "integer", "minimum": 1},
					"source":      map[string]any{"type": "string"},
				},
				"required":             []any{"kind", "prompt", "correct_answer", "points"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"difficulty", "questions"},
	"additionalProperties": false,
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func quizSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go literal through encoding/json.
		defBytes, err := json.Marshal(QuizSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(quizSchemaURL)
	})
	return compiledSchema, compileErr
}

// DecodeQuiz parses and validates a serialized quiz. The raw JSON must
// satisfy QuizSchema and every question must pass the default validator
// chain.
func DecodeQuiz(raw []byte) (*Quiz, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := quizSchema()
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var quiz Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	if quiz.Requested == 0 {
		quiz.Requested = len(quiz.Questions)
	}

	cfg := DefaultConfig()
	for i := range quiz.Questions {
		if verr := runValidators(&quiz.Questions[i], cfg); verr != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, verr)
		}
	}
	return &quiz, nil
}

// EncodeQuiz serializes a quiz as indented JSON.
func EncodeQuiz(q *Quiz) ([]byte, error) {
	return json.MarshalIndent(q, "", "  ")
}
