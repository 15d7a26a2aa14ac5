// Package schema wraps compiled JSON Schemas used at the pipeline
// boundaries. Validation is strict: unknown fields are rejected and every
// failure reports all violations, not just the first.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
)

type Validator struct {
	schema *jsonschema.Schema
}

// Compile compiles a JSON Schema document.
func Compile(raw string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON Schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// MustCompile is Compile for process-start configuration, where a bad
// schema is a programming error.
func MustCompile(raw string) *Validator {
	v, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks data against the schema. It returns nil when the data
// conforms, otherwise a sorted list of "path: message" violations.
func (v *Validator) Validate(data any) []string {
	result := v.schema.Validate(data)
	if result.IsValid() {
		return nil
	}

	seen := map[string]bool{}
	collect(result.ToList(), seen)

	violations := make([]string, 0, len(seen))
	for msg := range seen {
		violations = append(violations, msg)
	}
	sort.Strings(violations)
	return violations
}

// ValidateJSON parses raw JSON and validates the decoded value.
func (v *Validator) ValidateJSON(raw []byte) ([]string, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v.Validate(data), nil
}

func collect(list *jsonschema.List, seen map[string]bool) {
	if list == nil {
		return
	}
	for _, msg := range list.Errors {
		path := list.InstanceLocation
		if path == "" {
			path = "/"
		}
		seen[fmt.Sprintf("%s: %s", path, msg)] = true
	}
	for i := range list.Details {
		collect(&list.Details[i], seen)
	}
}
