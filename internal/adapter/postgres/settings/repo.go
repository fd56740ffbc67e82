// Package settings implements the UserSettings repository using
// PostgreSQL. Users without a stored row read as defaults; a row appears
// on first explicit change.
package settings

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

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const settingsColumns = `user_id, timezone, new_items_per_day, default_ease_factor,
       failure_penalty, daily_goal_type, daily_goal_target, updated_at`

const getByUserIDSQL = `
SELECT ` + settingsColumns + `
FROM user_settings
WHERE user_id = $1`

const upsertSQL = `
INSERT INTO user_settings (` + settingsColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
    timezone = EXCLUDED.timezone,
    new_items_per_day = EXCLUDED.new_items_per_day,
    default_ease_factor = EXCLUDED.default_ease_factor,
    failure_penalty = EXCLUDED.failure_penalty,
    daily_goal_type = EXCLUDED.daily_goal_type,
    daily_goal_target = EXCLUDED.daily_goal_target,
    updated_at = EXCLUDED.updated_at
RETURNING ` + settingsColumns

// GetByUserID returns the user's settings, falling back to defaults when
// no row has been written yet.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	settings, err := scanSettings(querier.QueryRow(ctx, getByUserIDSQL, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			def := domain.DefaultUserSettings(userID)
			return &def, nil
		}
		return nil, mapError(err, "user settings", userID)
	}

	return settings, nil
}

// Upsert writes the full settings row.
func (r *Repo) Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	updated, err := scanSettings(querier.QueryRow(ctx, upsertSQL,
		s.UserID, s.Timezone, s.NewItemsPerDay, s.DefaultEaseFactor,
		s.FailurePenalty, string(s.DailyGoalType), s.DailyGoalTarget, now))
	if err != nil {
		return nil, mapError(err, "user settings", s.UserID)
	}

	return updated, nil
}

func scanSettings(row pgx.Row) (*domain.UserSettings, error) {
	var (
		s        domain.UserSettings
		goalType string
	)

	if err := row.Scan(&s.UserID, &s.Timezone, &s.NewItemsPerDay,
		&s.DefaultEaseFactor, &s.FailurePenalty, &goalType,
		&s.DailyGoalTarget, &s.UpdatedAt); err != nil {
		return nil, err
	}

	s.DailyGoalType = domain.GoalType(goalType)

	return &s, nil
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
