// Package gamestate implements the GamificationState repository using
// PostgreSQL. One row per user, written with an upsert.
package gamestate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingopath/backend/internal/adapter/postgres"
	"github.com/lingopath/backend/internal/domain"
)

// Repo provides gamification state persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new gamification state repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const stateColumns = `user_id, level, current_xp, total_xp, current_streak, longest_streak,
       last_active_date, today_xp, today_date, daily_goal_type, daily_goal_target,
       daily_goal_progress, updated_at`

const getByUserIDSQL = `
SELECT ` + stateColumns + `
FROM gamification_states
WHERE user_id = $1`

const getForUpdateSQL = getByUserIDSQL + `
FOR UPDATE`

const upsertSQL = `
INSERT INTO gamification_states (` + stateColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (user_id) DO UPDATE SET
    level = EXCLUDED.level,
    current_xp = EXCLUDED.current_xp,
    total_xp = EXCLUDED.total_xp,
    current_streak = EXCLUDED.current_streak,
    longest_streak = EXCLUDED.longest_streak,
    last_active_date = EXCLUDED.last_active_date,
    today_xp = EXCLUDED.today_xp,
    today_date = EXCLUDED.today_date,
    daily_goal_type = EXCLUDED.daily_goal_type,
    daily_goal_target = EXCLUDED.daily_goal_target,
    daily_goal_progress = EXCLUDED.daily_goal_progress,
    updated_at = EXCLUDED.updated_at
RETURNING ` + stateColumns

// GetByUserID returns the user's gamification state.
// Returns domain.ErrNotFound when the user has never earned XP.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	state, err := scanState(querier.QueryRow(ctx, getByUserIDSQL, userID))
	if err != nil {
		return nil, mapError(err, "gamification state", userID)
	}

	return state, nil
}

// GetForUpdate returns the user's state with the row locked until the
// surrounding transaction ends, serializing concurrent award cycles.
// Only meaningful inside TxManager.RunInTx.
// Returns domain.ErrNotFound when the user has never earned XP.
func (r *Repo) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	state, err := scanState(querier.QueryRow(ctx, getForUpdateSQL, userID))
	if err != nil {
		return nil, mapError(err, "gamification state", userID)
	}

	return state, nil
}

// Upsert writes the full state row, creating it on first award.
func (r *Repo) Upsert(ctx context.Context, state *domain.GamificationState) (*domain.GamificationState, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	updated, err := scanState(querier.QueryRow(ctx, upsertSQL,
		state.UserID, state.Level, state.CurrentXP, state.TotalXP,
		state.CurrentStreak, state.LongestStreak, state.LastActiveDate,
		state.TodayXP, state.TodayDate, string(state.DailyGoalType),
		state.DailyGoalTarget, state.DailyGoalProgress, now))
	if err != nil {
		return nil, mapError(err, "gamification state", state.UserID)
	}

	return updated, nil
}

func scanState(row pgx.Row) (*domain.GamificationState, error) {
	var (
		state    domain.GamificationState
		goalType string
	)

	if err := row.Scan(&state.UserID, &state.Level, &state.CurrentXP, &state.TotalXP,
		&state.CurrentStreak, &state.LongestStreak, &state.LastActiveDate,
		&state.TodayXP, &state.TodayDate, &goalType, &state.DailyGoalTarget,
		&state.DailyGoalProgress, &state.UpdatedAt); err != nil {
		return nil, err
	}

	state.DailyGoalType = domain.GoalType(goalType)

	return &state, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
