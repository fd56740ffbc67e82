package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// AdvanceMilestoneInput holds the parameters for completing a path milestone.
type AdvanceMilestoneInput struct {
	PathID uuid.UUID
	// NextMilestone is the milestone the path moves to. Empty means the
	// path is finished.
	NextMilestone string
}

// Validate checks all fields and collects all errors.
func (i *AdvanceMilestoneInput) Validate() error {
	if i.PathID == uuid.Nil {
		return domain.NewValidationError("path_id", "required")
	}
	return nil
}

// RecordTrackInput holds the parameters for updating a topic track.
type RecordTrackInput struct {
	TrackID        uuid.UUID
	CompletedItems int
}

// Validate checks all fields and collects all errors.
func (i *RecordTrackInput) Validate() error {
	var errs []domain.FieldError

	if i.TrackID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "track_id", Message: "required"})
	}
	if i.CompletedItems < 0 {
		errs = append(errs, domain.FieldError{Field: "completed_items", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AdvanceMilestone records one completed milestone on a learning path and
// moves it to the next one. The updated path feeds back into the ranker on
// the next recommendation request.
func (s *Service) AdvanceMilestone(ctx context.Context, input AdvanceMilestoneInput) (*domain.PathProgress, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	path, err := s.progress.AdvanceMilestone(ctx, userID, input.PathID, input.NextMilestone)
	if err != nil {
		return nil, fmt.Errorf("advance milestone: %w", err)
	}

	s.log.InfoContext(ctx, "milestone advanced",
		slog.String("user_id", userID.String()),
		slog.String("path_id", input.PathID.String()),
		slog.Int("completed", path.CompletedMilestones),
	)

	return path, nil
}

// RecordTrackProgress sets the completed item count on a topic track.
func (s *Service) RecordTrackProgress(ctx context.Context, input RecordTrackInput) (*domain.TopicTrack, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	track, err := s.progress.UpdateTrackProgress(ctx, userID, input.TrackID, input.CompletedItems)
	if err != nil {
		return nil, fmt.Errorf("update track progress: %w", err)
	}

	s.log.InfoContext(ctx, "track progress recorded",
		slog.String("user_id", userID.String()),
		slog.String("track_id", input.TrackID.String()),
		slog.Int("completed", track.CompletedItems),
	)

	return track, nil
}
