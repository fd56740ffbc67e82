package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type statsRepo interface {
	ModuleBuckets(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error)
}

type progressRepo interface {
	GetPathProgress(ctx context.Context, userID uuid.UUID) ([]domain.PathProgress, error)
	AdvanceMilestone(ctx context.Context, userID, pathID uuid.UUID, nextMilestone string) (*domain.PathProgress, error)
	GetTopicTracks(ctx context.Context, userID uuid.UUID, languageCode string) ([]domain.TopicTrack, error)
	UpdateTrackProgress(ctx context.Context, userID, trackID uuid.UUID, completedItems int) (*domain.TopicTrack, error)
}

// queueReader is satisfied by the srs service.
type queueReader interface {
	GetQueueSummary(ctx context.Context) (domain.ReviewQueueSummary, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the recommendation business logic.
type Service struct {
	stats    statsRepo
	progress progressRepo
	queue    queueReader
	log      *slog.Logger
}

// NewService creates a new recommendation service.
func NewService(log *slog.Logger, stats statsRepo, progress progressRepo, queue queueReader) *Service {
	return &Service{
		stats:    stats,
		progress: progress,
		queue:    queue,
		log:      log.With("service", "recommend"),
	}
}
