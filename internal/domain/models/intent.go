package models

// Metric identifies one of the quantitative measures tracked in the snapshot.
type Metric string

const (
	MetricPurchases   Metric = "purchases"
	MetricRedemptions Metric = "redemptions"
	MetricAssets      Metric = "assets"
)

// Label returns the display name of the metric (e.g., "Purchases").
func (m Metric) Label() string {
	switch m {
	case MetricRedemptions:
		return "Redemptions"
	case MetricAssets:
		return "Assets"
	default:
		return "Purchases"
	}
}

// Window is a named relative date range used to filter rows.
type Window string

const (
	WindowAllTime     Window = "all_time"
	WindowLastQuarter Window = "last_quarter"
)

// GroupBy identifies the categorical dimension an aggregation is bucketed by.
// GroupNone yields a single scalar total; GroupMonth yields a monthly series.
type GroupBy string

const (
	GroupNone       GroupBy = "none"
	GroupFundType   GroupBy = "fund_type"
	GroupWholesaler GroupBy = "wholesaler"
	GroupAdvisor    GroupBy = "advisor"
	GroupMandate    GroupBy = "mandate"
	GroupMonth      GroupBy = "month"
)

// Label returns the display name of the grouping (e.g., "Fund Type").
func (g GroupBy) Label() string {
	switch g {
	case GroupFundType:
		return "Fund Type"
	case GroupWholesaler:
		return "Wholesaler"
	case GroupAdvisor:
		return "Advisor"
	case GroupMandate:
		return "Mandate Name"
	case GroupMonth:
		return "Month"
	default:
		return ""
	}
}

// Intent is the structured query extracted from a free-text question.
//
// Fields:
//   - Metric: which measure to aggregate (defaults to purchases).
//   - Window: named time range to filter rows by (defaults to all time).
//   - GroupBy: bucketing dimension; GroupNone forces a scalar text answer.
//   - RVP: optional Regional Vice President filter; empty means no filter.
//
// Intents are constructed fresh per request and never persisted.
type Intent struct {
	Metric  Metric
	Window  Window
	GroupBy GroupBy
	RVP     string
}
