package model

import "encoding/json"

// Record is the merged output of all briefing sections plus the
// rendered_document field once rendering has run.
type Record map[string]any

// Briefing is the typed view of a fully merged Record, used for
// rendering. Optional fields are pointers so the renderer can branch on
// presence rather than on zero values.
type Briefing struct {
	ReportDate string   `json:"report_date"`
	BottomLine string   `json:"bottom_line"`
	Bias       string   `json:"bias"`
	Drivers    []string `json:"drivers"`
	Headwinds  []string `json:"headwinds"`

	Indices   BriefingIndices `json:"indices"`
	KeyLevels BriefingLevels  `json:"key_levels"`

	VolatilityNote  *string `json:"volatility_note,omitempty"`
	FXNote          *string `json:"fx_note,omitempty"`
	GlobalNote      *string `json:"global_note,omitempty"`
	CommoditiesNote *string `json:"commodities_note,omitempty"`

	Flows          BriefingFlows `json:"flows"`
	Calendar       []Event       `json:"calendar"`
	ExecutionRules []string      `json:"execution_rules"`

	RenderedDocument string `json:"rendered_document,omitempty"`
}

type BriefingIndices struct {
	Nifty50   IndexComment `json:"nifty50"`
	Sensex    IndexComment `json:"sensex"`
	BankNifty IndexComment `json:"banknifty"`
}

type IndexComment struct {
	Current   float64 `json:"current"`
	ChangePct float64 `json:"change_pct"`
	Comment   *string `json:"comment,omitempty"`
}

type BriefingLevels struct {
	Nifty50   Levels  `json:"nifty50"`
	Sensex    *Levels `json:"sensex,omitempty"`
	BankNifty *Levels `json:"banknifty,omitempty"`
}

type BriefingFlows struct {
	FiiCr float64 `json:"fii_cr"`
	DiiCr float64 `json:"dii_cr"`
	AsOf  string  `json:"as_of"`
	Read  *string `json:"read,omitempty"`
}

// DecodeBriefing converts a schema-validated Record into its typed view.
func DecodeBriefing(rec Record) (Briefing, error) {
	var b Briefing
	raw, err := json.Marshal(rec)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return b, err
	}
	return b, nil
}
