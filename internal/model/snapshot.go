package model

// Snapshot is the market-data input to a briefing run. It is built once
// per request and never mutated by the pipeline.
type Snapshot struct {
	SessionDate string      `json:"session_date"`
	Indices     IndexSet    `json:"indices"`
	KeyLevels   KeyLevelSet `json:"key_levels"`
	Flows       Flows       `json:"flows"`
	Volatility  Volatility  `json:"volatility"`
	FX          FX          `json:"fx"`
	Global      Global      `json:"global"`
	Commodities Commodities `json:"commodities"`
	Events      []Event     `json:"events"`
	Overrides   *Overrides  `json:"overrides,omitempty"`
}

// IndexSet covers the fixed set of tracked indices.
type IndexSet struct {
	Nifty50   IndexReading `json:"nifty50"`
	Sensex    IndexReading `json:"sensex"`
	BankNifty IndexReading `json:"banknifty"`
}

type IndexReading struct {
	Current   float64  `json:"current"`
	ChangePct float64  `json:"change_pct"`
	LastClose *float64 `json:"last_close,omitempty"`
}

// KeyLevelSet carries next-session levels per tracked index. Support is
// only mandatory for Nifty 50, the primary index.
type KeyLevelSet struct {
	Nifty50   Levels `json:"nifty50"`
	Sensex    Levels `json:"sensex"`
	BankNifty Levels `json:"banknifty"`
}

type Levels struct {
	Support    *float64 `json:"support,omitempty"`
	Resistance float64  `json:"resistance"`
}

// Flows holds NSE institutional flow figures in crore.
type Flows struct {
	FiiCr float64 `json:"fii_cr"`
	DiiCr float64 `json:"dii_cr"`
	AsOf  string  `json:"as_of"`
}

type Volatility struct {
	Vix  float64 `json:"vix"`
	Note *string `json:"note,omitempty"`
}

type FX struct {
	USDINR float64 `json:"usdinr"`
	Note   *string `json:"note,omitempty"`
}

type Global struct {
	GiftNifty float64  `json:"gift_nifty"`
	USFutures *string  `json:"us_futures,omitempty"`
	US10Y     *float64 `json:"us_10y,omitempty"`
	Asia      *string  `json:"asia,omitempty"`
}

type Commodities struct {
	Brent *float64 `json:"brent,omitempty"`
	Gold  *float64 `json:"gold,omitempty"`
	Note  *string  `json:"note,omitempty"`
}

type Event struct {
	Title  string `json:"title"`
	Time   string `json:"time"`
	Impact string `json:"impact"`
}

// Overrides lets the caller pin the narrative. Section prompts must agree
// with these, never contradict them.
type Overrides struct {
	Bias     *string `json:"bias,omitempty"`
	Takeaway *string `json:"takeaway,omitempty"`
}
