// Package query applies a structured Intent to the loaded row snapshot.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/fundsight/salespulse/internal/domain/models"
)

// Execute filters and aggregates rows according to the intent.
//
// Pipeline:
//  1. Time filter: keep rows inside the resolved window; WindowAllTime is a
//     no-op.
//  2. Entity filter: case-insensitive RVP match when the intent carries one;
//     no surviving rows yields an empty Aggregation, never an error.
//  3. Aggregation: sum the intent's metric per grouping bucket. GroupNone
//     collapses everything into a single "Total" bucket; empty dimension
//     values bucket under models.UnknownGroup.
//
// Ordering is deterministic: buckets accumulate in first-seen order, then
// dimension groupings are stably sorted descending by value (ties keep the
// first-seen order) and month groupings ascending by month key.
//
// ref anchors relative windows such as last quarter; callers pass the
// current time. The row slice is never mutated.
func Execute(rows []models.SalesRow, in models.Intent, ref time.Time) models.Aggregation {
	start, end, bounded := windowBounds(in.Window, ref)

	index := make(map[string]int)
	agg := models.Aggregation{}

	for _, row := range rows {
		if bounded && !inRange(row.Date, start, end) {
			continue
		}
		if in.RVP != "" && !strings.EqualFold(row.RVP, in.RVP) {
			continue
		}

		key := row.Dimension(in.GroupBy)
		i, ok := index[key]
		if !ok {
			i = len(agg)
			index[key] = i
			agg = append(agg, models.Group{Key: key})
		}
		agg[i].Value = agg[i].Value.Add(row.Amount(in.Metric))
	}

	switch in.GroupBy {
	case models.GroupMonth:
		sort.SliceStable(agg, func(i, j int) bool { return agg[i].Key < agg[j].Key })
	case models.GroupNone:
		// single bucket, nothing to order
	default:
		sort.SliceStable(agg, func(i, j int) bool { return agg[i].Value.GreaterThan(agg[j].Value) })
	}

	return agg
}
