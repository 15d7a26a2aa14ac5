package briefing

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"marketbrief/internal/model"
)

var prn = message.NewPrinter(language.English)

func amount(v float64) string {
	return prn.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

func pct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func bulleted(items []string) []string {
	if len(items) == 0 {
		return []string{"None flagged."}
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return lines
}

func indexLine(name string, r model.IndexComment) string {
	line := fmt.Sprintf("%s: %s (%s)", name, amount(r.Current), pct(r.ChangePct))
	if r.Comment != nil {
		line += " | " + *r.Comment
	}
	return line
}

func levelsLine(name string, l model.Levels) string {
	if l.Support != nil {
		return fmt.Sprintf("%s: Support %s | Resistance %s", name, amount(*l.Support), amount(l.Resistance))
	}
	return fmt.Sprintf("%s: Resistance %s", name, amount(l.Resistance))
}

// Render maps a merged briefing to its fixed text layout. It is pure and
// deterministic: blocks follow registry order, optional lines are omitted
// when the field is absent, and empty lists fall back to "None flagged.".
func Render(b model.Briefing) string {
	lines := []string{"Post Market Briefing: " + b.ReportDate}

	lines = append(lines, "", "Bottom Line:")
	lines = append(lines, b.BottomLine)
	lines = append(lines, "Bias: "+b.Bias)
	lines = append(lines, "Drivers:")
	lines = append(lines, bulleted(b.Drivers)...)
	lines = append(lines, "Headwinds:")
	lines = append(lines, bulleted(b.Headwinds)...)

	lines = append(lines, "", "Market Indices Snapshot:")
	lines = append(lines, indexLine("Nifty 50", b.Indices.Nifty50))
	lines = append(lines, indexLine("Sensex", b.Indices.Sensex))
	lines = append(lines, indexLine("Nifty Bank", b.Indices.BankNifty))
	lines = append(lines, "Key Levels:")
	lines = append(lines, levelsLine("Nifty 50", b.KeyLevels.Nifty50))
	if b.KeyLevels.Sensex != nil {
		lines = append(lines, levelsLine("Sensex", *b.KeyLevels.Sensex))
	}
	if b.KeyLevels.BankNifty != nil {
		lines = append(lines, levelsLine("Nifty Bank", *b.KeyLevels.BankNifty))
	}
	if b.VolatilityNote != nil {
		lines = append(lines, "Volatility: "+*b.VolatilityNote)
	}
	if b.FXNote != nil {
		lines = append(lines, "FX: "+*b.FXNote)
	}
	if b.GlobalNote != nil {
		lines = append(lines, "Global Cues: "+*b.GlobalNote)
	}
	if b.CommoditiesNote != nil {
		lines = append(lines, "Commodities: "+*b.CommoditiesNote)
	}

	lines = append(lines, "", "Institutional Flows (₹ crore):")
	lines = append(lines, fmt.Sprintf("FII Net: %s | DII Net: %s", amount(b.Flows.FiiCr), amount(b.Flows.DiiCr)))
	lines = append(lines, "As of: "+b.Flows.AsOf)
	if b.Flows.Read != nil {
		lines = append(lines, "Read: "+*b.Flows.Read)
	}

	lines = append(lines, "", "What's Scheduled:")
	if len(b.Calendar) == 0 {
		lines = append(lines, "None flagged.")
	} else {
		for _, ev := range b.Calendar {
			lines = append(lines, fmt.Sprintf("• %s | %s (%s)", ev.Time, ev.Title, ev.Impact))
		}
	}

	lines = append(lines, "", "Playbook:")
	lines = append(lines, bulleted(b.ExecutionRules)...)

	return strings.Join(lines, "\n")
}
