package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator produces one JSON text completion for a prompt. The caller is
// responsible for parsing and validating the returned text.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// HTTPError reports a non-success status from the upstream service,
// keeping the status and body for diagnostics.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// ErrEmptyResponse means the response envelope carried no text payload.
var ErrEmptyResponse = errors.New("llm: response contains no text")

// CleanJSONResponse strips markdown fences and surrounding prose that
// models sometimes wrap around a JSON payload.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
