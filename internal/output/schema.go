// Package output defines the result record schema and validates every
// record before it reaches a sink.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/marcus-hale/resume-extract/internal/entity"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing one extraction result record.
func BuildResultJSONSchema() map[string]any {
	valueProp := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"value":           map[string]any{},
			"confidence":      map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"method":          map[string]any{"type": "string", "minLength": 1},
			"structured_data": map[string]any{"type": "object"},
		},
		"required": []string{"confidence", "method"},
	}

	props := map[string]any{
		"job_id": map[string]any{"type": "string"},
		"file":   map[string]any{"type": "string"},
		"confidence_score": map[string]any{
			"type": "number", "minimum": 0.0, "maximum": 1.0,
		},
		"job_state": map[string]any{
			"type": "string",
			"enum": []string{"PENDING", "FAST_PASS_DONE", "NEEDS_QUALITY_PASS", "COMPLETED", "FAILED"},
		},
		"used_ocr":    map[string]any{"type": "boolean"},
		"pass_count":  map[string]any{"type": "integer", "minimum": 0, "maximum": 2},
		"error":       map[string]any{"type": "string"},
		"started_at":  map[string]any{"type": "string"},
		"finished_at": map[string]any{"type": "string"},
	}
	for _, field := range entity.FieldOrder {
		props[field] = valueProp
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"file", "confidence_score", "job_state"},
	}
}

// Validator checks result records against the built schema.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	raw, err := json.Marshal(BuildResultJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("result.schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := c.Compile("result.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks one marshaled result record.
func (v *Validator) Validate(record []byte) error {
	var doc any
	if err := json.Unmarshal(record, &doc); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("record does not match result schema: %w", err)
	}
	return nil
}

// ValidateResult marshals and checks a result in one step, returning the
// encoded record for the sink.
func (v *Validator) ValidateResult(res *entity.ExtractionResult) ([]byte, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	if err := v.Validate(raw); err != nil {
		return nil, err
	}
	return raw, nil
}
