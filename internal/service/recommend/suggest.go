package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// SuggestInput holds the parameters for a recommendation request.
type SuggestInput struct {
	LanguageCode string
}

// Validate checks all fields and collects all errors.
func (i *SuggestInput) Validate() error {
	if i.LanguageCode == "" {
		return domain.NewValidationError("language_code", "required")
	}
	return nil
}

// Suggest gathers the user's aggregate learning state and ranks the next
// actions. Owns no persisted state of its own.
func (s *Service) Suggest(ctx context.Context, input SuggestInput) ([]domain.Recommendation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	buckets, err := s.stats.ModuleBuckets(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("module buckets: %w", err)
	}

	queue, err := s.queue.GetQueueSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("queue summary: %w", err)
	}

	paths, err := s.progress.GetPathProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("path progress: %w", err)
	}

	tracks, err := s.progress.GetTopicTracks(ctx, userID, input.LanguageCode)
	if err != nil {
		return nil, fmt.Errorf("topic tracks: %w", err)
	}

	recs := Rank(RankInput{
		Stats:        BuildLearningStats(buckets),
		Queue:        queue,
		Paths:        paths,
		Tracks:       tracks,
		LanguageCode: input.LanguageCode,
	})

	s.log.InfoContext(ctx, "recommendations ranked",
		slog.String("user_id", userID.String()),
		slog.String("language", input.LanguageCode),
		slog.Int("count", len(recs)),
	)

	return recs, nil
}
