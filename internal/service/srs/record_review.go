package srs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// RecordReview records a review and updates the item's scheduling state.
// The item update and the review log append happen in one transaction, so
// concurrent reviews of the same item cannot silently drop an update.
func (s *Service) RecordReview(ctx context.Context, input RecordReviewInput) (*domain.ReviewItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	item, err := s.items.GetByID(ctx, userID, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	// Snapshot state before review.
	snapshot := &domain.ReviewSnapshot{
		DueAt:        item.DueAt,
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
		LastReview:   item.LastReview,
		LastQuality:  item.LastQuality,
	}

	result := Schedule(ScheduleInput{
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
		Quality:      input.Quality,
		Now:          now,
		Config:       s.configFor(settings),
	})

	var updated *domain.ReviewItem

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.items.UpdateSchedule(txCtx, userID, item.ID, domain.ScheduleUpdateParams{
			DueAt:        result.DueAt,
			IntervalDays: result.IntervalDays,
			EaseFactor:   result.EaseFactor,
			Repetitions:  result.Repetitions,
			LastReview:   now,
			LastQuality:  result.Quality,
		})
		if updateErr != nil {
			return fmt.Errorf("update item: %w", updateErr)
		}

		_, logErr := s.reviews.Create(txCtx, &domain.ReviewLog{
			ID:         uuid.New(),
			ItemID:     item.ID,
			UserID:     userID,
			Quality:    result.Quality,
			PrevState:  snapshot,
			DurationMs: input.DurationMs,
			ReviewedAt: now,
		})
		if logErr != nil {
			return fmt.Errorf("create review log: %w", logErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, fmt.Errorf("item update failed: no result returned")
	}

	s.log.InfoContext(ctx, "review recorded",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
		slog.Int("quality", result.Quality),
		slog.Int("interval_days", updated.IntervalDays),
		slog.Float64("ease_factor", updated.EaseFactor),
	)

	return updated, nil
}

// GetItemHistory returns the review history of an item with pagination.
func (s *Service) GetItemHistory(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	// Check ownership.
	if _, err := s.items.GetByID(ctx, userID, itemID); err != nil {
		return nil, 0, fmt.Errorf("get item: %w", err)
	}

	if limit == 0 {
		limit = 50
	}

	logs, total, err := s.reviews.GetByItemID(ctx, itemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get review logs: %w", err)
	}

	return logs, total, nil
}
