package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vinrisk/vinrisk/internal/analyzer"
	"github.com/vinrisk/vinrisk/pkg/scoring"
	"github.com/vinrisk/vinrisk/pkg/vehicle"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func levelColor(level scoring.RiskLevel) string {
	if noColor() {
		return ""
	}
	switch level {
	case scoring.RiskLow:
		return colorGreen
	case scoring.RiskModerate:
		return colorYellow
	case scoring.RiskHigh:
		return colorRed
	default:
		return ""
	}
}

func impactColor(impact int) string {
	switch {
	case impact > 0:
		return colorRed
	case impact < 0:
		return colorGreen
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func describe(rec vehicle.Record) string {
	s := fmt.Sprintf("%d %s %s", rec.Year, scoring.Title(rec.Make), scoring.Title(rec.Model))
	if rec.HasPrice() {
		s += " at " + scoring.FormatPrice(rec.CurrentPrice)
	}
	return s
}

func (r *TerminalRenderer) RenderReport(w io.Writer, report *Report) error {
	a := report.Assessment
	level := scoring.LevelFromScore(a.RiskScore)
	lc := levelColor(level)

	// Header
	fmt.Fprintf(w, "%s\n", bold("VIN Risk Analysis: "+report.Record.VIN))
	fmt.Fprintf(w, "%s\n\n", describe(report.Record))
	fmt.Fprintf(w, "Risk score: %s\n\n",
		colored(fmt.Sprintf("%d/10 (%s)", a.RiskScore, level), lc))

	fmt.Fprintln(w, "Summary:")
	for _, line := range wrapText(a.Summary, 76) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)

	if report.Factors == nil {
		fmt.Fprintln(w, "Reasoning:")
		for _, line := range wrapText(a.Reasoning, 76) {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintln(w)
		return nil
	}

	f := report.Factors
	fmt.Fprintln(w, "Factors:")
	for _, fr := range f.Breakdown {
		fmt.Fprintf(w, "  %s %s\n",
			colored(fmt.Sprintf("(%+d)", fr.Impact), impactColor(fr.Impact)), bold(fr.Name))
		for _, line := range wrapText(fr.Explanation, 70) {
			fmt.Fprintf(w, "       %s\n", dim(line))
		}
	}
	if f.MissingDataAdjustment != 0 {
		fmt.Fprintf(w, "  %s %s\n",
			colored(fmt.Sprintf("(%+d)", f.MissingDataAdjustment), impactColor(f.MissingDataAdjustment)),
			bold("Missing data"))
		if f.MissingDataNote != "" {
			fmt.Fprintf(w, "       %s\n", dim(f.MissingDataNote))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, scoring.ScoreLine(*f))
	if a.Source == scoring.SourceGenerator {
		fmt.Fprintln(w, dim("Narrative written by the text generator."))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Reasoning:")
		for _, line := range wrapText(a.Reasoning, 76) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (r *TerminalRenderer) RenderRecord(w io.Writer, rec vehicle.Record) error {
	price := "not listed"
	if rec.HasPrice() {
		price = scoring.FormatPrice(rec.CurrentPrice)
	}
	ptm := "not available"
	if rec.HasMarketComparison() {
		ptm = scoring.FormatPercent(rec.PriceToMarketPercent) + "%"
	}
	mileage := scoring.FormatCount(rec.Mileage)
	if rec.Mileage == 0 {
		mileage = "0 (new)"
	}

	fmt.Fprintf(w, "%s\n", bold(rec.VIN))
	rows := [][2]string{
		{"Vehicle", fmt.Sprintf("%d %s %s", rec.Year, scoring.Title(rec.Make), scoring.Title(rec.Model))},
		{"Price", price},
		{"Price to market", ptm},
		{"Days on lot", scoring.FormatCount(rec.DaysOnLot)},
		{"Mileage", mileage},
		{"VDP views", scoring.FormatCount(rec.TotalVDPs)},
		{"Sales opportunities", scoring.FormatCount(rec.SalesOpportunities)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-20s %s\n", row[0]+":", row[1])
	}
	return nil
}

func (r *TerminalRenderer) RenderStats(w io.Writer, stats analyzer.DatabaseStats) error {
	fmt.Fprintf(w, "%s\n\n", bold("Dataset statistics"))
	fmt.Fprintf(w, "Vehicles: %s\n", scoring.FormatCount(stats.TotalVehicles))
	if len(stats.Makes) == 0 {
		fmt.Fprintln(w, "Makes:    none")
	} else {
		titled := make([]string, len(stats.Makes))
		for i, m := range stats.Makes {
			titled[i] = scoring.Title(m)
		}
		fmt.Fprintf(w, "Makes:    %d\n", len(stats.Makes))
		for _, line := range wrapText(strings.Join(titled, ", "), 70) {
			fmt.Fprintf(w, "          %s\n", dim(line))
		}
	}
	if stats.YearRange != nil {
		fmt.Fprintf(w, "Years:    %d-%d\n", stats.YearRange.Min, stats.YearRange.Max)
	}
	if p := stats.PriceRange; p != nil {
		fmt.Fprintf(w, "Prices:   %s-%s (avg %s)\n",
			scoring.FormatPrice(p.Min), scoring.FormatPrice(p.Max), scoring.FormatPrice(p.Avg))
	} else {
		fmt.Fprintln(w, "Prices:   none listed")
	}
	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
