package gamification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// UpdateGoal changes the user's daily goal. Switching the goal type
// clears today's progress, since the old unit no longer applies;
// adjusting only the target keeps it.
func (s *Service) UpdateGoal(ctx context.Context, input UpdateGoalInput) (*domain.GamificationState, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Same locked cycle as Award: a goal change racing an award must not
	// overwrite the award's state with a stale read.
	var updated *domain.GamificationState
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := s.lockOrDefault(txCtx, userID)
		if err != nil {
			return err
		}

		if state.DailyGoalType != input.GoalType {
			state.DailyGoalProgress = 0
		}
		state.DailyGoalType = input.GoalType
		state.DailyGoalTarget = input.Target

		updated, err = s.states.Upsert(txCtx, state)
		if err != nil {
			return fmt.Errorf("upsert gamification state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "daily goal updated",
		slog.String("user_id", userID.String()),
		slog.String("goal_type", input.GoalType.String()),
		slog.Int("target", input.Target),
	)

	return updated, nil
}
