package service

import (
	"context"
	"time"

	"github.com/fundsight/salespulse/internal/domain/dto"
	"github.com/fundsight/salespulse/internal/domain/models"
	"github.com/fundsight/salespulse/internal/format"
	"github.com/fundsight/salespulse/internal/intent"
	"github.com/fundsight/salespulse/internal/query"
)

// AskService answers free-text questions against the loaded row snapshot.
// This decouples HTTP handlers from the routing pipeline.
//
// Ask has no failure modes: extraction degrades to defaults, filtering may
// produce an empty result, and formatting always succeeds. The only error
// path in the system is the one-time snapshot load at startup.
type AskService interface {
	Ask(ctx context.Context, question string, userCtx map[string]any) dto.AskResponse
}

type askService struct {
	rows []models.SalesRow
	now  func() time.Time
}

// NewAskService wraps an immutable row snapshot. The snapshot is shared
// read-only across requests; Ask never mutates it, so concurrent calls need
// no coordination.
func NewAskService(rows []models.SalesRow) AskService {
	return &askService{rows: rows, now: time.Now}
}

func (s *askService) Ask(_ context.Context, question string, userCtx map[string]any) dto.AskResponse {
	in := intent.FromRequest(question, userCtx)
	agg := query.Execute(s.rows, in, s.now())
	return format.Format(in, agg)
}
