package srs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// LearnItem creates a review item for freshly learned content: due
// immediately, interval zero, default ease factor, no repetitions.
// Learning the same content twice returns domain.ErrAlreadyExists.
func (s *Service) LearnItem(ctx context.Context, input LearnItemInput) (*domain.ReviewItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	ease := settings.DefaultEaseFactor
	if ease <= 0 {
		ease = s.config.DefaultEaseFactor
	}

	item, err := s.items.Create(ctx, &domain.ReviewItem{
		ID:           uuid.New(),
		UserID:       userID,
		ItemID:       input.ContentKey,
		ItemType:     input.ItemType,
		Module:       input.Module,
		LanguageCode: input.LanguageCode,
		DueAt:        now,
		IntervalDays: 0,
		EaseFactor:   ease,
		Repetitions:  0,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("item %q: %w", input.ContentKey, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create review item: %w", err)
	}

	s.log.InfoContext(ctx, "item learned",
		slog.String("user_id", userID.String()),
		slog.String("content_key", input.ContentKey),
		slog.String("module", input.Module.String()),
	)

	return item, nil
}
