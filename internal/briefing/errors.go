package briefing

import (
	"fmt"
	"strings"
)

// SnapshotValidationError reports every structural problem found in an
// input snapshot. Nothing is generated when this is returned.
type SnapshotValidationError struct {
	Violations []string
}

func (e *SnapshotValidationError) Error() string {
	return "snapshot validation failed: " + strings.Join(e.Violations, "; ")
}

// TransportError means the generative service call itself failed. Status
// is zero when the failure happened below HTTP.
type TransportError struct {
	Section string
	Status  int
	Body    string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("section %s: upstream status %d: %s", e.Section, e.Status, e.Body)
	}
	return fmt.Sprintf("section %s: transport failure: %v", e.Section, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the service responded but the payload was
// not the expected JSON text. Raw carries the original text when there
// was one.
type MalformedResponseError struct {
	Section string
	Raw     string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("section %s: malformed response: %v", e.Section, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SectionSchemaError means the parsed response does not conform to the
// section's output schema.
type SectionSchemaError struct {
	Section    string
	Violations []string
}

func (e *SectionSchemaError) Error() string {
	return fmt.Sprintf("section %s: schema validation failed: %s", e.Section, strings.Join(e.Violations, "; "))
}

// AggregationError wraps the first section failure observed during a
// concurrent run. No partial record accompanies it.
type AggregationError struct {
	Section string
	Err     error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("briefing aggregation failed in section %s: %v", e.Section, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
