// Package format shapes aggregation results into the wire response variants.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/fundsight/salespulse/internal/domain/dto"
	"github.com/fundsight/salespulse/internal/domain/models"
)

// Format shapes an aggregation into the response variant the intent calls
// for.
//
// Rules:
//   - GroupNone → "text": the single total, formatted with thousands
//     separators. An empty aggregation formats as zero.
//   - any grouping → "chart": labels in aggregation order plus one dataset
//     with values aligned to them. An empty aggregation yields labels=[] and
//     one empty series.
//
// The "table" variant is reserved for raw tabular echo; no routing path
// produces it, but consumers already accept it (see dto.AskResponse).
// Formatting itself has no failure modes.
func Format(in models.Intent, agg models.Aggregation) dto.AskResponse {
	title := Title(in)

	if in.GroupBy == models.GroupNone {
		total := decimal.Zero
		if len(agg) > 0 {
			total = agg[0].Value
		}
		return dto.AskResponse{
			Type:  dto.ResponseText,
			Title: title,
			Text:  fmt.Sprintf("%s = %s", in.Metric.Label(), formatAmount(total)),
		}
	}

	labels := make([]string, 0, len(agg))
	data := make([]float64, 0, len(agg))
	for _, g := range agg {
		labels = append(labels, g.Key)
		data = append(data, round2(g.Value))
	}

	return dto.AskResponse{
		Type:   dto.ResponseChart,
		Title:  title,
		Labels: labels,
		Datasets: []dto.Dataset{
			{Label: string(in.Metric), Data: data},
		},
	}
}

// Title builds a human-readable restatement of the intent, e.g.
// "Redemptions for RVP Alice (Last Quarter) by Fund Type". A text response
// title re-extracts to the same metric, window, and filter.
func Title(in models.Intent) string {
	bits := []string{in.Metric.Label()}
	if in.RVP != "" {
		bits = append(bits, "for RVP "+in.RVP)
	}
	if in.Window == models.WindowLastQuarter {
		bits = append(bits, "(Last Quarter)")
	}
	switch in.GroupBy {
	case models.GroupNone:
	case models.GroupMonth:
		bits = append(bits, "(Monthly)")
	default:
		bits = append(bits, "by "+in.GroupBy.Label())
	}
	return strings.Join(bits, " ")
}

// formatAmount renders a decimal with thousands separators and at most two
// decimal places ("1234567.891" → "1,234,567.89").
func formatAmount(v decimal.Decimal) string {
	return humanize.CommafWithDigits(round2(v), 2)
}

// round2 converts to float64 at two-decimal precision for display and chart
// payloads.
func round2(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}
