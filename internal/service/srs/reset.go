package srs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// ResetItem puts an item back to its freshly-learned state: due now,
// interval zero, default ease factor, no repetitions. Review history is
// kept.
func (s *Service) ResetItem(ctx context.Context, input ItemIDInput) (*domain.ReviewItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	ease := settings.DefaultEaseFactor
	if ease <= 0 {
		ease = s.config.DefaultEaseFactor
	}

	item, err := s.items.ResetSchedule(ctx, userID, input.ItemID, ease, time.Now())
	if err != nil {
		return nil, fmt.Errorf("reset item: %w", err)
	}

	s.log.InfoContext(ctx, "item reset",
		slog.String("user_id", userID.String()),
		slog.String("item_id", input.ItemID.String()),
	)

	return item, nil
}

// RemoveItem deletes a review item. Together with ResetItem this is the
// only way an item ever leaves the schedule.
func (s *Service) RemoveItem(ctx context.Context, input ItemIDInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, userID, input.ItemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.InfoContext(ctx, "item removed",
		slog.String("user_id", userID.String()),
		slog.String("item_id", input.ItemID.String()),
	)

	return nil
}
