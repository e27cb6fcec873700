package models

import "github.com/shopspring/decimal"

// Group is one bucket of an aggregation: a dimension value and the summed
// metric amount for the rows falling into it.
type Group struct {
	Key   string
	Value decimal.Decimal
}

// Aggregation is the ordered result of applying an Intent to the row set.
//
// Ordering contract:
//   - dimension groupings: descending by value, ties keep first-seen order;
//   - month groupings: ascending by month key;
//   - GroupNone: a single "Total" group.
//
// An empty Aggregation (no rows survived filtering) is a valid result, not
// an error; it renders as zero or an empty chart downstream.
type Aggregation []Group
