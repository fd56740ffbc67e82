// Package reviewitem implements the ReviewItem repository using PostgreSQL.
// Fixed queries are raw SQL constants; the List filter builds its WHERE
// clause with squirrel.
package reviewitem

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

// Repo provides review item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const itemColumns = `id, user_id, item_id, item_type, module, language_code,
       due_at, interval_days, ease_factor, repetitions, last_review, last_quality,
       created_at, updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + itemColumns + `
FROM review_items
WHERE id = $1 AND user_id = $2`

const getByContentKeySQL = `
SELECT ` + itemColumns + `
FROM review_items
WHERE user_id = $1 AND item_id = $2`

const createSQL = `
INSERT INTO review_items (id, user_id, item_id, item_type, module, language_code,
                          due_at, interval_days, ease_factor, repetitions,
                          created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING ` + itemColumns

const updateScheduleSQL = `
UPDATE review_items
SET due_at = $3, interval_days = $4, ease_factor = $5, repetitions = $6,
    last_review = $7, last_quality = $8, updated_at = $9
WHERE id = $1 AND user_id = $2
RETURNING ` + itemColumns

const resetScheduleSQL = `
UPDATE review_items
SET due_at = $3, interval_days = 0, ease_factor = $4, repetitions = 0,
    last_review = NULL, last_quality = NULL, updated_at = $3
WHERE id = $1 AND user_id = $2
RETURNING ` + itemColumns

const deleteSQL = `
DELETE FROM review_items
WHERE id = $1 AND user_id = $2`

const getDueSQL = `
SELECT ` + itemColumns + `
FROM review_items
WHERE user_id = $1 AND due_at <= $2
ORDER BY
  CASE WHEN repetitions = 0 THEN 1 ELSE 0 END,
  due_at ASC
LIMIT $3`

const countDueSQL = `
SELECT count(*) FROM review_items
WHERE user_id = $1 AND due_at <= $2`

const countOverdueSQL = `
SELECT count(*) FROM review_items
WHERE user_id = $1 AND due_at < $2`

const moduleBucketsSQL = `
SELECT module,
       count(*) FILTER (WHERE repetitions = 0)                           AS new,
       count(*) FILTER (WHERE repetitions > 0 AND interval_days < $2)    AS learning,
       count(*) FILTER (WHERE repetitions > 0 AND interval_days >= $2 AND interval_days < $3) AS review,
       count(*) FILTER (WHERE repetitions > 0 AND interval_days >= $3)   AS mastered,
       count(*) FILTER (WHERE due_at <= $4)                              AS due,
       coalesce(avg(ease_factor), 0)                                     AS avg_ease_factor
FROM review_items
WHERE user_id = $1
GROUP BY module
ORDER BY module`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a review item by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getByIDSQL, itemID, userID))
	if err != nil {
		return nil, mapError(err, "review item", itemID)
	}

	return item, nil
}

// GetByContentKey returns the item tracking the given content key.
func (r *Repo) GetByContentKey(ctx context.Context, userID uuid.UUID, contentKey string) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getByContentKeySQL, userID, contentKey))
	if err != nil {
		return nil, mapError(err, "review item", uuid.Nil)
	}

	return item, nil
}

// GetDue returns items eligible for review: overdue first by due_at, items
// never reviewed last.
func (r *Repo) GetDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getDueSQL, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("get due items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("get due items: %w", err)
	}

	return items, nil
}

// CountDue returns the number of items due at now.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countDueSQL, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due items: %w", err)
	}

	return count, nil
}

// CountOverdue returns the number of items that were already due before
// the start of the current day, i.e. carried over from a previous day.
func (r *Repo) CountOverdue(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countOverdueSQL, userID, dayStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overdue items: %w", err)
	}

	return count, nil
}

// ModuleBuckets returns per-module mastery bucket counts in one GROUP BY
// pass. Modules with no items produce no row.
func (r *Repo) ModuleBuckets(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, moduleBucketsSQL, userID,
		domain.ReviewBucketMinDays, domain.MasteredBucketMinDays, now)
	if err != nil {
		return nil, fmt.Errorf("module buckets: %w", err)
	}
	defer rows.Close()

	var buckets []domain.ModuleBuckets
	for rows.Next() {
		var b domain.ModuleBuckets
		var module string
		if err := rows.Scan(&module, &b.New, &b.Learning, &b.Review, &b.Mastered,
			&b.Due, &b.AvgEaseFactor); err != nil {
			return nil, fmt.Errorf("scan module buckets: %w", err)
		}
		b.Module = domain.Module(module)
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate module buckets: %w", err)
	}

	if buckets == nil {
		buckets = []domain.ModuleBuckets{}
	}

	return buckets, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new review item. A duplicate content key for the same
// user results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	created, err := scanItem(querier.QueryRow(ctx, createSQL,
		item.ID, item.UserID, item.ItemID, string(item.ItemType), string(item.Module),
		item.LanguageCode, item.DueAt, item.IntervalDays, item.EaseFactor,
		item.Repetitions, now))
	if err != nil {
		return nil, mapError(err, "review item", item.ID)
	}

	return created, nil
}

// UpdateSchedule writes the scheduling fields computed by a review.
// Returns domain.ErrNotFound if the item does not exist or belongs to
// another user.
func (r *Repo) UpdateSchedule(ctx context.Context, userID, itemID uuid.UUID, params domain.ScheduleUpdateParams) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	item, err := scanItem(querier.QueryRow(ctx, updateScheduleSQL,
		itemID, userID, params.DueAt, params.IntervalDays, params.EaseFactor,
		params.Repetitions, params.LastReview, params.LastQuality, now))
	if err != nil {
		return nil, mapError(err, "review item", itemID)
	}

	return item, nil
}

// ResetSchedule puts an item back to its freshly-learned state while
// keeping the row (and with it the item's review history).
func (r *Repo) ResetSchedule(ctx context.Context, userID, itemID uuid.UUID, easeFactor float64, now time.Time) (*domain.ReviewItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, resetScheduleSQL,
		itemID, userID, now.UTC().Truncate(time.Microsecond), easeFactor))
	if err != nil {
		return nil, mapError(err, "review item", itemID)
	}

	return item, nil
}

// Delete removes a review item.
// Returns domain.ErrNotFound if the item does not exist or belongs to
// another user.
func (r *Repo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, itemID, userID)
	if err != nil {
		return mapError(err, "review item", itemID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review item %s: %w", itemID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanItem scans a single item from any pgx row source.
func scanItem(row pgx.Row) (*domain.ReviewItem, error) {
	var (
		item        domain.ReviewItem
		itemType    string
		module      string
		lastReview  *time.Time
		lastQuality *int
	)

	if err := row.Scan(&item.ID, &item.UserID, &item.ItemID, &itemType, &module,
		&item.LanguageCode, &item.DueAt, &item.IntervalDays, &item.EaseFactor,
		&item.Repetitions, &lastReview, &lastQuality,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}

	item.ItemType = domain.ItemType(itemType)
	item.Module = domain.Module(module)
	item.LastReview = lastReview
	item.LastQuality = lastQuality

	return &item, nil
}

// scanItems scans multiple rows into a slice.
func scanItems(rows pgx.Rows) ([]*domain.ReviewItem, error) {
	var items []*domain.ReviewItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*domain.ReviewItem{}
	}

	return items, nil
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
