// Package intent turns free-text questions into structured query intents.
//
// The extractor is deliberately not a natural-language-understanding layer:
// it is an ordered table of keyword rules over a fixed vocabulary, evaluated
// first-match-wins. Unrecognized input degrades to documented defaults and
// never produces an error.
package intent

import (
	"regexp"
	"strings"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// metricRules map metric keywords to canonical metrics, in priority order.
// "redemption" is checked first so it wins over any other keyword present in
// the same question.
var metricRules = []struct {
	keyword string
	metric  models.Metric
}{
	{"redemption", models.MetricRedemptions},
	{"purchase", models.MetricPurchases},
	{"asset", models.MetricAssets},
}

// groupRules map grouping keywords to dimensions, in priority order.
var groupRules = []struct {
	keyword string
	group   models.GroupBy
}{
	{"fund type", models.GroupFundType},
	{"wholesaler", models.GroupWholesaler},
	{"advisor", models.GroupAdvisor},
	{"mandate", models.GroupMandate},
}

// windowPhrases resolve to the last completed calendar quarter.
var windowPhrases = []string{"last quarter", "past quarter"}

// trendPhrases request a monthly time series when no dimension grouping is
// present.
var trendPhrases = []string{"trend", "over time", "by month"}

// rvpPattern captures the name following "RVP" (e.g., "rvp alice" → "alice").
var rvpPattern = regexp.MustCompile(`(?i)\brvp\s+([a-zA-Z]+)`)

// Extract parses a question into an Intent.
//
// Resolution rules, applied to the lowercased question:
//   - Metric: first metricRules keyword found; none → purchases. The silent
//     purchases default is a documented fallback, not an error.
//   - Window: any windowPhrases match → last quarter; none → all time.
//   - Grouping: first groupRules keyword found; none → no grouping, unless a
//     trendPhrases match upgrades it to a monthly series.
//   - Filter: "RVP <name>" sets the RVP filter, name title-cased.
//
// Extract never fails; ambiguous or unrecognized input yields defaults.
func Extract(question string) models.Intent {
	q := strings.ToLower(question)

	in := models.Intent{
		Metric:  models.MetricPurchases,
		Window:  models.WindowAllTime,
		GroupBy: models.GroupNone,
	}

	for _, r := range metricRules {
		if strings.Contains(q, r.keyword) {
			in.Metric = r.metric
			break
		}
	}

	for _, p := range windowPhrases {
		if strings.Contains(q, p) {
			in.Window = models.WindowLastQuarter
			break
		}
	}

	for _, r := range groupRules {
		if strings.Contains(q, r.keyword) {
			in.GroupBy = r.group
			break
		}
	}
	if in.GroupBy == models.GroupNone {
		for _, p := range trendPhrases {
			if strings.Contains(q, p) {
				in.GroupBy = models.GroupMonth
				break
			}
		}
	}

	if m := rvpPattern.FindStringSubmatch(question); m != nil {
		in.RVP = titleCase(m[1])
	}

	return in
}

// FromRequest extracts an Intent from the question, falling back to the
// caller-supplied user context for filters the text does not mention
// (currently only "rvp").
func FromRequest(question string, userCtx map[string]any) models.Intent {
	in := Extract(question)
	if in.RVP == "" && userCtx != nil {
		if v, ok := userCtx["rvp"].(string); ok && v != "" {
			in.RVP = v
		}
	}
	return in
}

// titleCase normalizes a captured RVP name ("aLICE" → "Alice"). The capture
// group is ASCII letters only, so byte indexing is safe.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
