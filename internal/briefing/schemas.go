package briefing

import "marketbrief/internal/schema"

// Snapshot input contract. Closed objects throughout: an index referenced
// anywhere must be one of the three tracked identifiers.
const snapshotSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["session_date", "indices", "key_levels", "flows", "volatility", "fx", "global", "commodities", "events"],
	"properties": {
		"session_date": {"type": "string", "minLength": 1},
		"indices": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50", "sensex", "banknifty"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/indexReading"},
				"sensex": {"$ref": "#/$defs/indexReading"},
				"banknifty": {"$ref": "#/$defs/indexReading"}
			}
		},
		"key_levels": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50", "sensex", "banknifty"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/primaryLevels"},
				"sensex": {"$ref": "#/$defs/levels"},
				"banknifty": {"$ref": "#/$defs/levels"}
			}
		},
		"flows": {
			"type": "object",
			"additionalProperties": false,
			"required": ["fii_cr", "dii_cr", "as_of"],
			"properties": {
				"fii_cr": {"type": "number"},
				"dii_cr": {"type": "number"},
				"as_of": {"type": "string", "minLength": 1}
			}
		},
		"volatility": {
			"type": "object",
			"additionalProperties": false,
			"required": ["vix"],
			"properties": {
				"vix": {"type": "number"},
				"note": {"type": "string"}
			}
		},
		"fx": {
			"type": "object",
			"additionalProperties": false,
			"required": ["usdinr"],
			"properties": {
				"usdinr": {"type": "number"},
				"note": {"type": "string"}
			}
		},
		"global": {
			"type": "object",
			"additionalProperties": false,
			"required": ["gift_nifty"],
			"properties": {
				"gift_nifty": {"type": "number"},
				"us_futures": {"type": "string"},
				"us_10y": {"type": "number"},
				"asia": {"type": "string"}
			}
		},
		"commodities": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"brent": {"type": "number"},
				"gold": {"type": "number"},
				"note": {"type": "string"}
			}
		},
		"events": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["title", "time", "impact"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"time": {"type": "string", "minLength": 1},
					"impact": {"type": "string", "minLength": 1}
				}
			}
		},
		"overrides": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"bias": {"type": "string"},
				"takeaway": {"type": "string"}
			}
		}
	},
	"$defs": {
		"indexReading": {
			"type": "object",
			"additionalProperties": false,
			"required": ["current", "change_pct"],
			"properties": {
				"current": {"type": "number"},
				"change_pct": {"type": "number"},
				"last_close": {"type": "number"}
			}
		},
		"levels": {
			"type": "object",
			"additionalProperties": false,
			"required": ["resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		},
		"primaryLevels": {
			"type": "object",
			"additionalProperties": false,
			"required": ["support", "resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		}
	}
}`

const pulseSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["report_date", "bottom_line", "bias", "drivers", "headwinds"],
	"properties": {
		"report_date": {"type": "string", "minLength": 1},
		"bottom_line": {"type": "string", "minLength": 1},
		"bias": {"type": "string", "minLength": 1},
		"drivers": {"type": "array", "items": {"type": "string"}},
		"headwinds": {"type": "array", "items": {"type": "string"}}
	}
}`

const marketsSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["report_date", "indices", "key_levels"],
	"properties": {
		"report_date": {"type": "string", "minLength": 1},
		"indices": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50", "sensex", "banknifty"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/indexOut"},
				"sensex": {"$ref": "#/$defs/indexOut"},
				"banknifty": {"$ref": "#/$defs/indexOut"}
			}
		},
		"key_levels": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/primaryLevelsOut"},
				"sensex": {"$ref": "#/$defs/levelsOut"},
				"banknifty": {"$ref": "#/$defs/levelsOut"}
			}
		},
		"volatility_note": {"type": "string"},
		"fx_note": {"type": "string"},
		"global_note": {"type": "string"},
		"commodities_note": {"type": "string"}
	},
	"$defs": {
		"indexOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["current", "change_pct"],
			"properties": {
				"current": {"type": "number"},
				"change_pct": {"type": "number"},
				"comment": {"type": "string"}
			}
		},
		"levelsOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		},
		"primaryLevelsOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["support", "resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		}
	}
}`

const playbookSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["report_date", "flows", "calendar", "execution_rules"],
	"properties": {
		"report_date": {"type": "string", "minLength": 1},
		"flows": {
			"type": "object",
			"additionalProperties": false,
			"required": ["fii_cr", "dii_cr", "as_of"],
			"properties": {
				"fii_cr": {"type": "number"},
				"dii_cr": {"type": "number"},
				"as_of": {"type": "string", "minLength": 1},
				"read": {"type": "string"}
			}
		},
		"calendar": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["title", "time", "impact"],
				"properties": {
					"title": {"type": "string"},
					"time": {"type": "string"},
					"impact": {"type": "string"}
				}
			}
		},
		"execution_rules": {"type": "array", "items": {"type": "string"}}
	}
}`

// Union of all section outputs plus the rendered document. The merged
// record is checked against this before it is returned.
const recordSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": [
		"report_date", "bottom_line", "bias", "drivers", "headwinds",
		"indices", "key_levels", "flows", "calendar", "execution_rules",
		"rendered_document"
	],
	"properties": {
		"report_date": {"type": "string", "minLength": 1},
		"bottom_line": {"type": "string", "minLength": 1},
		"bias": {"type": "string", "minLength": 1},
		"drivers": {"type": "array", "items": {"type": "string"}},
		"headwinds": {"type": "array", "items": {"type": "string"}},
		"indices": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50", "sensex", "banknifty"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/indexOut"},
				"sensex": {"$ref": "#/$defs/indexOut"},
				"banknifty": {"$ref": "#/$defs/indexOut"}
			}
		},
		"key_levels": {
			"type": "object",
			"additionalProperties": false,
			"required": ["nifty50"],
			"properties": {
				"nifty50": {"$ref": "#/$defs/primaryLevelsOut"},
				"sensex": {"$ref": "#/$defs/levelsOut"},
				"banknifty": {"$ref": "#/$defs/levelsOut"}
			}
		},
		"volatility_note": {"type": "string"},
		"fx_note": {"type": "string"},
		"global_note": {"type": "string"},
		"commodities_note": {"type": "string"},
		"flows": {
			"type": "object",
			"additionalProperties": false,
			"required": ["fii_cr", "dii_cr", "as_of"],
			"properties": {
				"fii_cr": {"type": "number"},
				"dii_cr": {"type": "number"},
				"as_of": {"type": "string", "minLength": 1},
				"read": {"type": "string"}
			}
		},
		"calendar": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["title", "time", "impact"],
				"properties": {
					"title": {"type": "string"},
					"time": {"type": "string"},
					"impact": {"type": "string"}
				}
			}
		},
		"execution_rules": {"type": "array", "items": {"type": "string"}},
		"rendered_document": {"type": "string", "minLength": 1}
	},
	"$defs": {
		"indexOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["current", "change_pct"],
			"properties": {
				"current": {"type": "number"},
				"change_pct": {"type": "number"},
				"comment": {"type": "string"}
			}
		},
		"levelsOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		},
		"primaryLevelsOut": {
			"type": "object",
			"additionalProperties": false,
			"required": ["support", "resistance"],
			"properties": {
				"support": {"type": "number"},
				"resistance": {"type": "number"}
			}
		}
	}
}`

var (
	snapshotValidator = schema.MustCompile(snapshotSchema)
	recordValidator   = schema.MustCompile(recordSchema)
)
