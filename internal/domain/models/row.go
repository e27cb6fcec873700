package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownGroup is the bucket used when a row carries an empty value for the
// dimension being grouped on. Rows are never dropped for missing dimensions.
const UnknownGroup = "Unknown"

// SalesRow represents a single observation in the sales snapshot.
// Each field matches one column of the snapshot table / CSV file.
//
// Column order:
//  1. Date
//  2. Purchases
//  3. Redemptions
//  4. Assets
//  5. Wholesaler
//  6. Advisor
//  7. MandateName
//  8. FundType
//  9. RVP
//
// Rows are loaded once at startup and treated as immutable afterwards.
type SalesRow struct {
	Date        time.Time
	Purchases   decimal.Decimal
	Redemptions decimal.Decimal
	Assets      decimal.Decimal
	Wholesaler  string
	Advisor     string
	MandateName string
	FundType    string
	RVP         string
}

// Amount returns the value of the given metric for this row.
// Unrecognized metrics return zero; callers always pass a canonical Metric.
func (r SalesRow) Amount(m Metric) decimal.Decimal {
	switch m {
	case MetricRedemptions:
		return r.Redemptions
	case MetricAssets:
		return r.Assets
	default:
		return r.Purchases
	}
}

// Dimension returns the categorical value for the given grouping dimension,
// substituting UnknownGroup for empty values. GroupMonth is resolved from the
// row date as "YYYY-MM"; GroupNone has no dimension and returns "Total".
func (r SalesRow) Dimension(g GroupBy) string {
	var v string
	switch g {
	case GroupFundType:
		v = r.FundType
	case GroupWholesaler:
		v = r.Wholesaler
	case GroupAdvisor:
		v = r.Advisor
	case GroupMandate:
		v = r.MandateName
	case GroupMonth:
		return r.Date.Format("2006-01")
	default:
		return "Total"
	}
	if v == "" {
		return UnknownGroup
	}
	return v
}
