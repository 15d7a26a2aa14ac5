package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"marketbrief/internal/model"
	"marketbrief/pkg/llm"
)

// buildPrompt serializes the fixed prompt for one section: preamble,
// directive, projected input, always in that order.
func buildPrompt(sec Section, input any) (string, error) {
	projected, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize section input: %w", err)
	}
	return promptPreamble + "\n\n" + sec.Directive + "\n\nInput:\n" + string(projected), nil
}

// runSection turns one (snapshot, section) pair into a validated partial
// record or a single tagged failure. It never retries and never mutates
// the snapshot.
func runSection(ctx context.Context, gen llm.Generator, sec Section, snap *model.Snapshot) (model.Record, error) {
	prompt, err := buildPrompt(sec, sec.Project(snap))
	if err != nil {
		return nil, err
	}

	text, err := gen.GenerateJSON(ctx, prompt)
	if err != nil {
		var httpErr *llm.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &TransportError{Section: sec.Name, Status: httpErr.Status, Body: httpErr.Body, Err: err}
		}
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, &MalformedResponseError{Section: sec.Name, Err: err}
		}
		return nil, &TransportError{Section: sec.Name, Err: err}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(text)), &payload); err != nil {
		return nil, &MalformedResponseError{Section: sec.Name, Raw: text, Err: err}
	}

	if violations := sec.Schema.Validate(payload); violations != nil {
		return nil, &SectionSchemaError{Section: sec.Name, Violations: violations}
	}

	return model.Record(payload), nil
}
