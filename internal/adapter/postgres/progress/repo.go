// Package progress implements the learning path and topic track
// repository using PostgreSQL. These tables feed the recommendation
// ranker.
package progress

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

// Repo provides path progress and topic track persistence backed by
// PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getPathProgressSQL = `
SELECT path_id, language_code, current_milestone, completed_milestones,
       total_milestones, updated_at
FROM path_progress
WHERE user_id = $1
ORDER BY updated_at DESC`

const advanceMilestoneSQL = `
UPDATE path_progress
SET completed_milestones = completed_milestones + 1,
    current_milestone = $3,
    updated_at = $4
WHERE user_id = $1 AND path_id = $2
RETURNING path_id, language_code, current_milestone, completed_milestones,
          total_milestones, updated_at`

const getTopicTracksSQL = `
SELECT track_id, language_code, title, completed_items, total_items
FROM topic_tracks
WHERE user_id = $1 AND language_code = $2
ORDER BY completed_items DESC, title ASC`

const updateTrackProgressSQL = `
UPDATE topic_tracks
SET completed_items = $3
WHERE user_id = $1 AND track_id = $2
RETURNING track_id, language_code, title, completed_items, total_items`

// ---------------------------------------------------------------------------
// Path progress
// ---------------------------------------------------------------------------

// GetPathProgress returns all learning paths the user is on, most
// recently touched first.
func (r *Repo) GetPathProgress(ctx context.Context, userID uuid.UUID) ([]domain.PathProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getPathProgressSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("get path progress: %w", err)
	}
	defer rows.Close()

	var paths []domain.PathProgress
	for rows.Next() {
		var p domain.PathProgress
		if err := rows.Scan(&p.PathID, &p.LanguageCode, &p.CurrentMilestone,
			&p.CompletedMilestones, &p.TotalMilestones, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan path progress: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate path progress: %w", err)
	}

	if paths == nil {
		paths = []domain.PathProgress{}
	}

	return paths, nil
}

// AdvanceMilestone marks the current milestone completed and moves to the
// next one. nextMilestone may be empty when the path is finished.
func (r *Repo) AdvanceMilestone(ctx context.Context, userID, pathID uuid.UUID, nextMilestone string) (*domain.PathProgress, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	var p domain.PathProgress
	err := querier.QueryRow(ctx, advanceMilestoneSQL, userID, pathID, nextMilestone, now).
		Scan(&p.PathID, &p.LanguageCode, &p.CurrentMilestone,
			&p.CompletedMilestones, &p.TotalMilestones, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "path progress", pathID)
	}

	return &p, nil
}

// ---------------------------------------------------------------------------
// Topic tracks
// ---------------------------------------------------------------------------

// GetTopicTracks returns the user's topic tracks for a language, most
// progressed first.
func (r *Repo) GetTopicTracks(ctx context.Context, userID uuid.UUID, languageCode string) ([]domain.TopicTrack, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getTopicTracksSQL, userID, languageCode)
	if err != nil {
		return nil, fmt.Errorf("get topic tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.TopicTrack
	for rows.Next() {
		var t domain.TopicTrack
		if err := rows.Scan(&t.TrackID, &t.LanguageCode, &t.Title,
			&t.CompletedItems, &t.TotalItems); err != nil {
			return nil, fmt.Errorf("scan topic track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topic tracks: %w", err)
	}

	if tracks == nil {
		tracks = []domain.TopicTrack{}
	}

	return tracks, nil
}

// UpdateTrackProgress sets the completed item count on a track.
func (r *Repo) UpdateTrackProgress(ctx context.Context, userID, trackID uuid.UUID, completedItems int) (*domain.TopicTrack, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.TopicTrack
	err := querier.QueryRow(ctx, updateTrackProgressSQL, userID, trackID, completedItems).
		Scan(&t.TrackID, &t.LanguageCode, &t.Title, &t.CompletedItems, &t.TotalItems)
	if err != nil {
		return nil, mapError(err, "topic track", trackID)
	}

	return &t, nil
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
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
