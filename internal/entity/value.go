package entity

import "github.com/marcus-hale/resume-extract/constants"

// ExtractedValue is the unit result of every field-extraction strategy: the
// value, how sure the strategy is, and which method produced it. The empty
// value is the sentinel None(): confidence 0, method "none", nil value.
type ExtractedValue struct {
	Value          any            `json:"value"`
	Confidence     float64        `json:"confidence"`
	Method         string         `json:"method"`
	StructuredData map[string]any `json:"structured_data,omitempty"`
}

// None returns the sentinel value for "nothing was extracted".
func None() ExtractedValue {
	return ExtractedValue{Method: constants.MethodNone}
}

// IsEmpty reports whether the value carries no extraction.
func (v ExtractedValue) IsEmpty() bool {
	return v.Confidence == 0 || v.Method == constants.MethodNone || v.Value == nil
}

// Str returns the value as a string, or "" when it is empty or not a string.
func (v ExtractedValue) Str() string {
	s, _ := v.Value.(string)
	return s
}
