package briefing

import (
	"marketbrief/internal/model"
	"marketbrief/internal/schema"
)

// Section pairs a projector, a directive and a strict output schema. The
// registry below is fixed at process start; its order is the order the
// rendered document follows, not the order sections are generated in.
type Section struct {
	Name      string
	Directive string
	Project   func(*model.Snapshot) any
	Schema    *schema.Validator
}

const promptPreamble = `You are the market desk writer for an Indian post-market briefing sent to traders right after the close. Tone: factual, compact, no hype and no advice disclaimers. Echo every numeric input exactly as given; never invent or round figures. Respond with a single JSON object and nothing else.`

const pulseDirective = `Write the bottom-line read of the session. Produce exactly these fields:
{
  "report_date": "<the session_date from the input, unchanged>",
  "bottom_line": "<one or two sentences on how the session closed and why>",
  "bias": "<one of: bullish, bearish, neutral, cautious>",
  "drivers": ["<up to three factors that moved the market today>"],
  "headwinds": ["<up to three risks for the next session>"]
}
If the input carries overrides, your bias and bottom line must agree with them rather than contradict them. Leave drivers or headwinds as an empty array when the input gives you nothing to cite.`

const marketsDirective = `Report the closing picture across indices and levels. Produce exactly these fields:
{
  "report_date": "<the session_date from the input, unchanged>",
  "indices": {
    "nifty50": {"current": <echo>, "change_pct": <echo>, "comment": "<optional one-liner>"},
    "sensex": {"current": <echo>, "change_pct": <echo>},
    "banknifty": {"current": <echo>, "change_pct": <echo>}
  },
  "key_levels": {
    "nifty50": {"support": <echo>, "resistance": <echo>},
    "sensex": {"resistance": <echo>},
    "banknifty": {"resistance": <echo>}
  },
  "volatility_note": "<only when the input volatility carries a note or the vix move is worth a line>",
  "fx_note": "<only when the input fx is worth a line>",
  "global_note": "<only when global cues are worth a line>",
  "commodities_note": "<only when commodities are worth a line>"
}
Omit any optional note entirely rather than sending an empty string. Echo support and resistance only for indices present in the input key_levels.`

const playbookDirective = `Summarize flows and lay out the next session. Produce exactly these fields:
{
  "report_date": "<the session_date from the input, unchanged>",
  "flows": {"fii_cr": <echo>, "dii_cr": <echo>, "as_of": "<echo>", "read": "<optional one-line interpretation>"},
  "calendar": [{"title": "<echo>", "time": "<echo>", "impact": "<echo>"}],
  "execution_rules": ["<two to four concrete if-then rules for the next session>"]
}
The calendar must list the input events in their given order and nothing else; an empty input events list means an empty calendar array.`

// Projection types are structs, not maps, so the serialized prompt input
// is deterministic.

type pulseInput struct {
	SessionDate    string           `json:"session_date"`
	Nifty50Pct     float64          `json:"nifty50_change_pct"`
	SensexPct      float64          `json:"sensex_change_pct"`
	BankNiftyPct   float64          `json:"banknifty_change_pct"`
	Vix            float64          `json:"vix"`
	VolatilityNote *string          `json:"volatility_note,omitempty"`
	Overrides      *model.Overrides `json:"overrides,omitempty"`
}

type marketsInput struct {
	SessionDate string            `json:"session_date"`
	Indices     model.IndexSet    `json:"indices"`
	KeyLevels   model.KeyLevelSet `json:"key_levels"`
	Volatility  model.Volatility  `json:"volatility"`
	FX          model.FX          `json:"fx"`
	Global      model.Global      `json:"global"`
	Commodities model.Commodities `json:"commodities"`
}

type playbookInput struct {
	SessionDate string           `json:"session_date"`
	Flows       model.Flows      `json:"flows"`
	Events      []model.Event    `json:"events"`
	Overrides   *model.Overrides `json:"overrides,omitempty"`
}

func projectPulse(s *model.Snapshot) any {
	return pulseInput{
		SessionDate:    s.SessionDate,
		Nifty50Pct:     s.Indices.Nifty50.ChangePct,
		SensexPct:      s.Indices.Sensex.ChangePct,
		BankNiftyPct:   s.Indices.BankNifty.ChangePct,
		Vix:            s.Volatility.Vix,
		VolatilityNote: s.Volatility.Note,
		Overrides:      s.Overrides,
	}
}

func projectMarkets(s *model.Snapshot) any {
	return marketsInput{
		SessionDate: s.SessionDate,
		Indices:     s.Indices,
		KeyLevels:   s.KeyLevels,
		Volatility:  s.Volatility,
		FX:          s.FX,
		Global:      s.Global,
		Commodities: s.Commodities,
	}
}

func projectPlaybook(s *model.Snapshot) any {
	return playbookInput{
		SessionDate: s.SessionDate,
		Flows:       s.Flows,
		Events:      s.Events,
		Overrides:   s.Overrides,
	}
}

var registry = []Section{
	{
		Name:      "pulse",
		Directive: pulseDirective,
		Project:   projectPulse,
		Schema:    schema.MustCompile(pulseSchema),
	},
	{
		Name:      "markets",
		Directive: marketsDirective,
		Project:   projectMarkets,
		Schema:    schema.MustCompile(marketsSchema),
	},
	{
		Name:      "playbook",
		Directive: playbookDirective,
		Project:   projectPlaybook,
		Schema:    schema.MustCompile(playbookSchema),
	},
}
