package recommend

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	ModuleBucketsFunc func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error)
}

func (m *statsRepoMock) ModuleBuckets(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error) {
	if m.ModuleBucketsFunc == nil {
		panic("statsRepoMock.ModuleBucketsFunc: method is nil but statsRepo.ModuleBuckets was just called")
	}
	return m.ModuleBucketsFunc(ctx, userID, now)
}

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	GetPathProgressFunc     func(ctx context.Context, userID uuid.UUID) ([]domain.PathProgress, error)
	AdvanceMilestoneFunc    func(ctx context.Context, userID, pathID uuid.UUID, nextMilestone string) (*domain.PathProgress, error)
	GetTopicTracksFunc      func(ctx context.Context, userID uuid.UUID, languageCode string) ([]domain.TopicTrack, error)
	UpdateTrackProgressFunc func(ctx context.Context, userID, trackID uuid.UUID, completedItems int) (*domain.TopicTrack, error)
}

func (m *progressRepoMock) GetPathProgress(ctx context.Context, userID uuid.UUID) ([]domain.PathProgress, error) {
	if m.GetPathProgressFunc == nil {
		panic("progressRepoMock.GetPathProgressFunc: method is nil but progressRepo.GetPathProgress was just called")
	}
	return m.GetPathProgressFunc(ctx, userID)
}

func (m *progressRepoMock) AdvanceMilestone(ctx context.Context, userID, pathID uuid.UUID, nextMilestone string) (*domain.PathProgress, error) {
	if m.AdvanceMilestoneFunc == nil {
		panic("progressRepoMock.AdvanceMilestoneFunc: method is nil but progressRepo.AdvanceMilestone was just called")
	}
	return m.AdvanceMilestoneFunc(ctx, userID, pathID, nextMilestone)
}

func (m *progressRepoMock) GetTopicTracks(ctx context.Context, userID uuid.UUID, languageCode string) ([]domain.TopicTrack, error) {
	if m.GetTopicTracksFunc == nil {
		panic("progressRepoMock.GetTopicTracksFunc: method is nil but progressRepo.GetTopicTracks was just called")
	}
	return m.GetTopicTracksFunc(ctx, userID, languageCode)
}

func (m *progressRepoMock) UpdateTrackProgress(ctx context.Context, userID, trackID uuid.UUID, completedItems int) (*domain.TopicTrack, error) {
	if m.UpdateTrackProgressFunc == nil {
		panic("progressRepoMock.UpdateTrackProgressFunc: method is nil but progressRepo.UpdateTrackProgress was just called")
	}
	return m.UpdateTrackProgressFunc(ctx, userID, trackID, completedItems)
}

var _ queueReader = &queueReaderMock{}

type queueReaderMock struct {
	GetQueueSummaryFunc func(ctx context.Context) (domain.ReviewQueueSummary, error)
}

func (m *queueReaderMock) GetQueueSummary(ctx context.Context) (domain.ReviewQueueSummary, error) {
	if m.GetQueueSummaryFunc == nil {
		panic("queueReaderMock.GetQueueSummaryFunc: method is nil but queueReader.GetQueueSummary was just called")
	}
	return m.GetQueueSummaryFunc(ctx)
}
