package srs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
	"github.com/lingopath/backend/pkg/dateutil"
)

// estimatedSecondsPerItem is the planning figure used for queue time
// estimates.
const estimatedSecondsPerItem = 20

// GetReviewQueue returns items ready for review, overdue first, capped by
// the per-day new-item allowance from user settings.
func (s *Service) GetReviewQueue(ctx context.Context, input GetQueueInput) ([]*domain.ReviewItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.config.QueueLimit
	}
	if limit <= 0 {
		limit = 50
	}

	now := time.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	tz := dateutil.ParseTimezone(settings.Timezone)
	dayStart := dateutil.DayStart(now, tz)

	newToday, err := s.reviews.CountNewToday(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count new today: %w", err)
	}

	newRemaining := max(0, settings.NewItemsPerDay-newToday)

	due, err := s.items.GetDue(ctx, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get due items: %w", err)
	}

	// Due items always pass; the daily allowance only limits never-reviewed
	// items. Lapsed items have repetitions reset to zero but a recorded
	// last review, and stay due regardless of the allowance.
	queue := make([]*domain.ReviewItem, 0, len(due))
	newIncluded := 0
	for _, item := range due {
		if item.LastReview == nil {
			if newIncluded >= newRemaining {
				continue
			}
			newIncluded++
		}
		queue = append(queue, item)
	}

	s.log.InfoContext(ctx, "review queue generated",
		slog.String("user_id", userID.String()),
		slog.Int("total", len(queue)),
		slog.Int("new_included", newIncluded),
	)

	return queue, nil
}

// GetQueueSummary returns the aggregate view of the review queue that the
// recommendation ranker consumes.
func (s *Service) GetQueueSummary(ctx context.Context) (domain.ReviewQueueSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ReviewQueueSummary{}, domain.ErrUnauthorized
	}

	now := time.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return domain.ReviewQueueSummary{}, fmt.Errorf("load settings: %w", err)
	}

	tz := dateutil.ParseTimezone(settings.Timezone)
	dayStart := dateutil.DayStart(now, tz)

	total, err := s.items.CountDue(ctx, userID, now)
	if err != nil {
		return domain.ReviewQueueSummary{}, fmt.Errorf("count due: %w", err)
	}

	overdue, err := s.items.CountOverdue(ctx, userID, dayStart)
	if err != nil {
		return domain.ReviewQueueSummary{}, fmt.Errorf("count overdue: %w", err)
	}

	return domain.ReviewQueueSummary{
		Total:            total,
		Urgency:          queueUrgency(total, overdue),
		EstimatedMinutes: (total*estimatedSecondsPerItem + 59) / 60,
	}, nil
}

// queueUrgency buckets the queue pressure. Any item overdue by a full day
// dominates; otherwise the bucket grows with queue size.
func queueUrgency(total, overdue int) domain.ReviewUrgency {
	switch {
	case total == 0:
		return domain.UrgencyNone
	case overdue > 0:
		return domain.UrgencyOverdue
	case total >= 50:
		return domain.UrgencyHigh
	case total >= 20:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}
