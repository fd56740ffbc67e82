package srs

import (
	"context"
	"fmt"
	"time"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// GetModuleBuckets returns per-module mastery bucket counts for the user.
// The aggregation runs in SQL; the result feeds the recommendation ranker.
func (s *Service) GetModuleBuckets(ctx context.Context) ([]domain.ModuleBuckets, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	buckets, err := s.items.ModuleBuckets(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("module buckets: %w", err)
	}

	return buckets, nil
}
