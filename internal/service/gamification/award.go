package gamification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
	"github.com/lingopath/backend/pkg/dateutil"
)

// Award applies an XP event to the user's ledger and persists the result.
// The state row is created with defaults on the user's first award.
func (s *Service) Award(ctx context.Context, input AwardInput) (*domain.AwardResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.maxAward > 0 && input.Amount > s.maxAward {
		return nil, domain.NewValidationError("amount", "too large")
	}

	today, err := s.todayKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Lock the state row for the whole read-compute-write cycle so two
	// concurrent awards cannot both start from the same snapshot and
	// lose one of the increments.
	var result domain.AwardResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := s.lockOrDefault(txCtx, userID)
		if err != nil {
			return err
		}

		next, res, err := AwardXP(*state, domain.XPEvent{
			Amount: input.Amount,
			Source: input.Source,
		}, today)
		if err != nil {
			return err
		}

		if _, err := s.states.Upsert(txCtx, &next); err != nil {
			return fmt.Errorf("upsert gamification state: %w", err)
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "xp awarded",
		slog.String("user_id", userID.String()),
		slog.Int("amount", input.Amount),
		slog.String("source", input.Source.String()),
		slog.Int("level", result.NewLevel),
		slog.Bool("leveled_up", result.LeveledUp),
	)

	return &result, nil
}

// GetStreak returns the user's streak with the lazy stale-streak
// correction applied. Read-only: a broken streak is persisted only by
// the next Award.
func (s *Service) GetStreak(ctx context.Context) (domain.StreakInfo, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.StreakInfo{}, domain.ErrUnauthorized
	}

	state, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return domain.StreakInfo{}, err
	}

	today, err := s.todayKey(ctx, userID)
	if err != nil {
		return domain.StreakInfo{}, err
	}

	return StreakInfo(*state, today), nil
}

// GetState returns the persisted ledger state, defaulted for new users.
func (s *Service) GetState(ctx context.Context) (*domain.GamificationState, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.loadOrDefault(ctx, userID)
}

func (s *Service) loadOrDefault(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	state, err := s.states.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			def := domain.DefaultGamificationState(userID)
			return &def, nil
		}
		return nil, fmt.Errorf("get gamification state: %w", err)
	}
	return state, nil
}

// lockOrDefault is loadOrDefault with the row locked for the rest of
// the transaction. A user with no state row yet has nothing to lock;
// the upsert's ON CONFLICT clause settles that first-award case.
func (s *Service) lockOrDefault(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	state, err := s.states.GetForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			def := domain.DefaultGamificationState(userID)
			return &def, nil
		}
		return nil, fmt.Errorf("lock gamification state: %w", err)
	}
	return state, nil
}

func (s *Service) todayKey(ctx context.Context, userID uuid.UUID) (string, error) {
	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get settings: %w", err)
	}
	return dateutil.DayKey(time.Now(), dateutil.ParseTimezone(settings.Timezone)), nil
}
