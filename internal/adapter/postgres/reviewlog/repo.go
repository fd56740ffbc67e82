// Package reviewlog implements the ReviewLog repository using PostgreSQL.
// The pre-review snapshot is stored as JSONB; day-scoped counts are
// computed in SQL.
package reviewlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/lingopath/backend/internal/adapter/postgres"
	"github.com/lingopath/backend/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO review_logs (id, item_id, user_id, quality, prev_state, duration_ms, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, item_id, user_id, quality, prev_state, duration_ms, reviewed_at`

const getByItemIDSQL = `
SELECT id, item_id, user_id, quality, prev_state, duration_ms, reviewed_at
FROM review_logs
WHERE item_id = $1
ORDER BY reviewed_at DESC
LIMIT $2 OFFSET $3`

const countByItemIDSQL = `SELECT count(*) FROM review_logs WHERE item_id = $1`

const countTodaySQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2`

// countNewTodaySQL depends on the JSON key "last_review" in snapshotJSON.
// If you rename snapshotJSON.LastReview's json tag, update this query too.
// A missing last_review marks a first-ever review; lapsed items have
// repetitions reset to zero but keep their last_review, so a repetition
// check would miscount them as new.
const countNewTodaySQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2
AND prev_state IS NOT NULL
AND prev_state->>'last_review' IS NULL`

const deleteOlderThanSQL = `DELETE FROM review_logs WHERE reviewed_at < $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByItemID returns review logs for an item, newest first, with
// limit/offset pagination. Returns logs, total count, and error.
func (r *Repo) GetByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, countByItemIDSQL, itemID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review_logs by item_id: %w", err)
	}

	// limit=0 means "no limit" for SQL purposes.
	effectiveLimit := limit
	if effectiveLimit <= 0 {
		effectiveLimit = 2147483647
	}

	rows, err := querier.Query(ctx, getByItemIDSQL, itemID, effectiveLimit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get review_logs by item_id: %w", err)
	}
	defer rows.Close()

	logs, err := scanLogs(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("get review_logs by item_id: %w", err)
	}

	return logs, total, nil
}

// CountToday returns the count of reviews for a user since dayStart.
// dayStart is already in UTC.
func (r *Repo) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countTodaySQL, userID, dayStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("count today reviews: %w", err)
	}

	return count, nil
}

// CountNewToday returns the count of reviews since dayStart whose item had
// never been reviewed before (snapshot repetitions = 0). This is what the
// daily new-item allowance is charged against.
func (r *Repo) CountNewToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countNewTodaySQL, userID, dayStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("count new today reviews: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new review log and returns the persisted domain.ReviewLog.
func (r *Repo) Create(ctx context.Context, rl *domain.ReviewLog) (*domain.ReviewLog, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	prevStateBytes, err := marshalSnapshot(rl.PrevState)
	if err != nil {
		return nil, fmt.Errorf("review_log marshal prev_state: %w", err)
	}

	var durationMs pgtype.Int4
	if rl.DurationMs != nil {
		durationMs = pgtype.Int4{Int32: int32(*rl.DurationMs), Valid: true}
	}

	created, err := scanLog(querier.QueryRow(ctx, createSQL,
		rl.ID, rl.ItemID, rl.UserID, rl.Quality, prevStateBytes, durationMs, rl.ReviewedAt))
	if err != nil {
		return nil, mapError(err, "review_log", rl.ID)
	}

	return created, nil
}

// DeleteOlderThan removes review logs reviewed before the threshold.
// Returns the number of rows deleted. Intended for the retention cron,
// not for request-path code.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteOlderThanSQL, threshold)
	if err != nil {
		return 0, fmt.Errorf("delete old review_logs: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanLog(row pgx.Row) (*domain.ReviewLog, error) {
	var (
		rl         domain.ReviewLog
		prevState  []byte
		durationMs pgtype.Int4
	)

	if err := row.Scan(&rl.ID, &rl.ItemID, &rl.UserID, &rl.Quality,
		&prevState, &durationMs, &rl.ReviewedAt); err != nil {
		return nil, err
	}

	if durationMs.Valid {
		d := int(durationMs.Int32)
		rl.DurationMs = &d
	}

	ps, err := unmarshalSnapshot(prevState)
	if err != nil {
		return nil, fmt.Errorf("review_log %s: %w", rl.ID, err)
	}
	rl.PrevState = ps

	return &rl, nil
}

func scanLogs(rows pgx.Rows) ([]*domain.ReviewLog, error) {
	var logs []*domain.ReviewLog
	for rows.Next() {
		rl, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []*domain.ReviewLog{}
	}

	return logs, nil
}

// ---------------------------------------------------------------------------
// JSONB serialization helpers for ReviewSnapshot (prev_state)
// ---------------------------------------------------------------------------

// snapshotJSON is an intermediate struct for JSON marshaling of
// domain.ReviewSnapshot. The domain type has no json tags, so the repo
// layer owns the serialization format.
type snapshotJSON struct {
	DueAt        time.Time  `json:"due_at"`
	IntervalDays int        `json:"interval_days"`
	EaseFactor   float64    `json:"ease_factor"`
	Repetitions  int        `json:"repetitions"`
	LastReview   *time.Time `json:"last_review,omitempty"`
	LastQuality  *int       `json:"last_quality,omitempty"`
}

func marshalSnapshot(s *domain.ReviewSnapshot) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(snapshotJSON{
		DueAt:        s.DueAt,
		IntervalDays: s.IntervalDays,
		EaseFactor:   s.EaseFactor,
		Repetitions:  s.Repetitions,
		LastReview:   s.LastReview,
		LastQuality:  s.LastQuality,
	})
}

func unmarshalSnapshot(data []byte) (*domain.ReviewSnapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var sj snapshotJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("unmarshal prev_state: %w", err)
	}
	return &domain.ReviewSnapshot{
		DueAt:        sj.DueAt,
		IntervalDays: sj.IntervalDays,
		EaseFactor:   sj.EaseFactor,
		Repetitions:  sj.Repetitions,
		LastReview:   sj.LastReview,
		LastQuality:  sj.LastQuality,
	}, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

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
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
