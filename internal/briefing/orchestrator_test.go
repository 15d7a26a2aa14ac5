package briefing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"marketbrief/internal/model"
)

type genFunc func(ctx context.Context, prompt string) (string, error)

func (f genFunc) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func ptr[T any](v T) *T { return &v }

func validSnapshot() *model.Snapshot {
	return &model.Snapshot{
		SessionDate: "2026-02-13",
		Indices: model.IndexSet{
			Nifty50:   model.IndexReading{Current: 23450, ChangePct: -0.35},
			Sensex:    model.IndexReading{Current: 76800, ChangePct: -0.22},
			BankNifty: model.IndexReading{Current: 49200, ChangePct: 0.41},
		},
		KeyLevels: model.KeyLevelSet{
			Nifty50:   model.Levels{Support: ptr(23300.0), Resistance: 23600},
			Sensex:    model.Levels{Resistance: 77400},
			BankNifty: model.Levels{Resistance: 49800},
		},
		Flows:      model.Flows{FiiCr: -1250, DiiCr: 980, AsOf: "2026-02-12"},
		Volatility: model.Volatility{Vix: 14.2},
		FX:         model.FX{USDINR: 87.15},
		Global:     model.Global{GiftNifty: 23510},
		Events: []model.Event{
			{Title: "RBI policy decision", Time: "10:00 IST", Impact: "high"},
		},
	}
}

const pulsePayload = `{
	"report_date": "2026-02-13",
	"bottom_line": "Benchmarks slipped in a quiet session as financials lagged.",
	"bias": "cautious",
	"drivers": ["FII selling pressure"],
	"headwinds": ["RBI policy decision"]
}`

const marketsPayload = `{
	"report_date": "2026-02-13",
	"indices": {
		"nifty50": {"current": 23450, "change_pct": -0.35},
		"sensex": {"current": 76800, "change_pct": -0.22},
		"banknifty": {"current": 49200, "change_pct": 0.41}
	},
	"key_levels": {
		"nifty50": {"support": 23300, "resistance": 23600},
		"sensex": {"resistance": 77400},
		"banknifty": {"resistance": 49800}
	}
}`

const playbookPayload = `{
	"report_date": "2026-02-13",
	"flows": {"fii_cr": -1250, "dii_cr": 980, "as_of": "2026-02-12"},
	"calendar": [{"title": "RBI policy decision", "time": "10:00 IST", "impact": "high"}],
	"execution_rules": ["Stay light into the RBI decision"]
}`

// sectionResponses routes a prompt to the canned response for its
// section by rebuilding each section's expected prompt.
func sectionResponses(t *testing.T, snap *model.Snapshot, responses map[string]string, delays map[string]time.Duration) genFunc {
	t.Helper()
	return func(ctx context.Context, prompt string) (string, error) {
		for _, sec := range registry {
			expected, err := buildPrompt(sec, sec.Project(snap))
			if err != nil {
				return "", err
			}
			if prompt != expected {
				continue
			}
			if d, ok := delays[sec.Name]; ok {
				time.Sleep(d)
			}
			resp, ok := responses[sec.Name]
			if !ok {
				return "", errors.New("no canned response for section " + sec.Name)
			}
			return resp, nil
		}
		return "", errors.New("unrecognized prompt")
	}
}

func defaultResponses() map[string]string {
	return map[string]string{
		"pulse":    pulsePayload,
		"markets":  marketsPayload,
		"playbook": playbookPayload,
	}
}

func TestGenerate_Success(t *testing.T) {
	snap := validSnapshot()
	p := New(sectionResponses(t, snap, defaultResponses(), nil))

	rec, err := p.Generate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	doc, ok := rec["rendered_document"].(string)
	if !ok || doc == "" {
		t.Fatal("record missing rendered_document")
	}

	// rendered_document must be exactly the renderer applied to the rest
	// of the record.
	stripped := model.Record{}
	for k, v := range rec {
		if k != "rendered_document" {
			stripped[k] = v
		}
	}
	b, err := model.DecodeBriefing(stripped)
	if err != nil {
		t.Fatalf("decode record: %v", err)
	}
	assert.Equal(t, doc, Render(b))

	assert.Equal(t, rec["report_date"], "2026-02-13")
}

func TestGenerate_RenderedBlocksInRegistryOrder(t *testing.T) {
	snap := validSnapshot()
	p := New(sectionResponses(t, snap, defaultResponses(), nil))

	rec, err := p.Generate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	doc := rec["rendered_document"].(string)

	blocks := []string{
		"Bottom Line:",
		"Market Indices Snapshot:",
		"Institutional Flows (₹ crore):",
		"What's Scheduled:",
	}
	last := -1
	for _, block := range blocks {
		idx := strings.Index(doc, block)
		if idx < 0 {
			t.Fatalf("rendered document missing block %q:\n%s", block, doc)
		}
		if idx <= last {
			t.Fatalf("block %q out of order:\n%s", block, doc)
		}
		last = idx
	}

	for _, want := range []string{"23,450.00", "76,800.00", "49,200.00", "-1,250", "980", "RBI policy decision"} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered document missing %q:\n%s", want, doc)
		}
	}

	if got := strings.Count(doc[strings.Index(doc, "What's Scheduled:"):], "• "); got != 2 {
		// One calendar entry plus one playbook rule after the calendar block.
		t.Errorf("expected exactly one calendar bullet and one playbook bullet, got %d bullets:\n%s", got, doc)
	}
}

func TestGenerate_OrderIndependentOfCompletion(t *testing.T) {
	snap := validSnapshot()

	fast := New(sectionResponses(t, snap, defaultResponses(), nil))
	slow := New(sectionResponses(t, snap, defaultResponses(), map[string]time.Duration{
		"pulse": 80 * time.Millisecond,
	}))

	fastRec, err := fast.Generate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	slowRec, err := slow.Generate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Generate with delayed section failed: %v", err)
	}

	assert.Equal(t, fastRec["rendered_document"], slowRec["rendered_document"])
}

func TestGenerate_NonJSONSectionFailsWhole(t *testing.T) {
	snap := validSnapshot()
	responses := defaultResponses()
	responses["playbook"] = "the desk is closed, try later"

	p := New(sectionResponses(t, snap, responses, nil))

	rec, err := p.Generate(context.Background(), snap)
	if rec != nil {
		t.Fatal("expected no record on section failure")
	}

	var aggErr *AggregationError
	if !errors.As(err, &aggErr) {
		t.Fatalf("expected AggregationError, got %T: %v", err, err)
	}
	assert.Equal(t, aggErr.Section, "playbook")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError in chain, got: %v", err)
	}
	assert.Equal(t, malformed.Section, "playbook")
	assert.Equal(t, malformed.Raw, "the desk is closed, try later")
}

func TestGenerate_MissingFieldNamesSectionAndField(t *testing.T) {
	snap := validSnapshot()
	responses := defaultResponses()
	responses["pulse"] = `{
		"report_date": "2026-02-13",
		"bias": "cautious",
		"drivers": [],
		"headwinds": []
	}`

	p := New(sectionResponses(t, snap, responses, nil))

	_, err := p.Generate(context.Background(), snap)
	var schemaErr *SectionSchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SectionSchemaError, got %T: %v", err, err)
	}
	assert.Equal(t, schemaErr.Section, "pulse")
	if !strings.Contains(err.Error(), "bottom_line") {
		t.Errorf("error should name the missing field, got: %v", err)
	}
}

func TestGenerate_UnknownFieldRejected(t *testing.T) {
	snap := validSnapshot()
	responses := defaultResponses()
	responses["playbook"] = strings.Replace(playbookPayload,
		`"execution_rules":`,
		`"surprise_extra": "nope", "execution_rules":`, 1)

	p := New(sectionResponses(t, snap, responses, nil))

	_, err := p.Generate(context.Background(), snap)
	var schemaErr *SectionSchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SectionSchemaError, got %T: %v", err, err)
	}
	assert.Equal(t, schemaErr.Section, "playbook")
}

func TestGenerate_SharedReportDateLastRegistryOrderWins(t *testing.T) {
	snap := validSnapshot()
	responses := defaultResponses()
	responses["playbook"] = strings.Replace(playbookPayload, `"report_date": "2026-02-13"`, `"report_date": "2026-02-14"`, 1)

	// Delay playbook so it settles last in time as well as in order; the
	// merge must not depend on completion order either way.
	p := New(sectionResponses(t, snap, responses, map[string]time.Duration{
		"markets": 40 * time.Millisecond,
	}))

	rec, err := p.Generate(context.Background(), snap)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	assert.Equal(t, rec["report_date"], "2026-02-14")
	if !strings.Contains(rec["rendered_document"].(string), "Post Market Briefing: 2026-02-14") {
		t.Error("rendered header should carry the winning report_date")
	}
}

func TestGenerate_InvalidSnapshotFailsBeforeGeneration(t *testing.T) {
	snap := validSnapshot()
	snap.SessionDate = ""

	called := false
	p := New(genFunc(func(ctx context.Context, prompt string) (string, error) {
		called = true
		return pulsePayload, nil
	}))

	_, err := p.Generate(context.Background(), snap)
	var valErr *SnapshotValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected SnapshotValidationError, got %T: %v", err, err)
	}
	if called {
		t.Error("no generation should happen for an invalid snapshot")
	}
}

func TestValidateSnapshotJSON_EnumeratesAllViolations(t *testing.T) {
	raw := []byte(`{
		"session_date": "2026-02-13",
		"indices": {
			"nifty50": {"current": 23450, "change_pct": -0.35},
			"sensex": {"current": 76800, "change_pct": -0.22},
			"banknifty": {"current": 49200, "change_pct": 0.41}
		},
		"key_levels": {
			"nifty50": {"support": 23300, "resistance": 23600},
			"sensex": {"resistance": 77400},
			"banknifty": {"resistance": 49800}
		},
		"volatility": {"vix": 14.2},
		"fx": {"usdinr": 87.15},
		"global": {"gift_nifty": 23510},
		"commodities": {}
	}`)

	err := ValidateSnapshotJSON(raw)
	var valErr *SnapshotValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected SnapshotValidationError, got %T: %v", err, err)
	}
	msg := err.Error()
	for _, field := range []string{"flows", "events"} {
		if !strings.Contains(msg, field) {
			t.Errorf("violations should mention %q, got: %s", field, msg)
		}
	}
}

func TestValidateSnapshotJSON_RejectsUnknownFields(t *testing.T) {
	snap := validSnapshot()
	p := New(sectionResponses(t, snap, defaultResponses(), nil))
	if _, err := p.Generate(context.Background(), snap); err != nil {
		t.Fatalf("baseline snapshot should be valid: %v", err)
	}

	raw := []byte(`{"session_date": "2026-02-13", "mystery": true}`)
	err := ValidateSnapshotJSON(raw)
	if err == nil {
		t.Fatal("unknown snapshot field should be rejected")
	}
}
