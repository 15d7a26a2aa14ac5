package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"marketbrief/internal/model"
	"marketbrief/pkg/llm"
)

// Pipeline drives the section fan-out for a snapshot. Generation either
// yields a complete, schema-checked record with its rendered document, or
// fails as a whole; partial results are never returned.
type Pipeline struct {
	gen llm.Generator
}

func New(gen llm.Generator) *Pipeline {
	return &Pipeline{gen: gen}
}

// ValidateSnapshotJSON checks a raw snapshot payload against the input
// contract before anything is generated from it.
func ValidateSnapshotJSON(raw []byte) error {
	violations, err := snapshotValidator.ValidateJSON(raw)
	if err != nil {
		return &SnapshotValidationError{Violations: []string{err.Error()}}
	}
	if violations != nil {
		return &SnapshotValidationError{Violations: violations}
	}
	return nil
}

// Generate runs every registered section concurrently against the
// snapshot, merges the validated partials and renders the document. The
// first section failure cancels the remaining sections and is returned
// wrapped in an AggregationError.
func (p *Pipeline) Generate(ctx context.Context, snap *model.Snapshot) (model.Record, error) {
	// Shallow copy so a nil events slice serializes as an empty list
	// without touching the caller's snapshot.
	s := *snap
	if s.Events == nil {
		s.Events = []model.Event{}
	}
	raw, err := json.Marshal(&s)
	if err != nil {
		return nil, &SnapshotValidationError{Violations: []string{"snapshot not serializable: " + err.Error()}}
	}
	if err := ValidateSnapshotJSON(raw); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	partials := make([]model.Record, len(registry))
	for i, sec := range registry {
		i, sec := i, sec
		g.Go(func() error {
			part, err := runSection(ctx, p.gen, sec, &s)
			if err != nil {
				return &AggregationError{Section: sec.Name, Err: err}
			}
			partials[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Shallow merge in registry order. Output namespaces are disjoint by
	// registry design except report_date, where the last section wins.
	merged := model.Record{}
	for _, part := range partials {
		for k, v := range part {
			merged[k] = v
		}
	}

	b, err := model.DecodeBriefing(merged)
	if err != nil {
		return nil, fmt.Errorf("decode merged record: %w", err)
	}
	merged["rendered_document"] = Render(b)

	if violations := recordValidator.Validate(map[string]any(merged)); violations != nil {
		return nil, fmt.Errorf("merged record failed output contract: %s", strings.Join(violations, "; "))
	}
	return merged, nil
}
