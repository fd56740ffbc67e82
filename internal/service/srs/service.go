// Package srs implements spaced-repetition scheduling: the pure SM-2
// calculation plus the use cases that load, schedule, and persist review
// items.
package srs

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

type itemRepo interface {
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewItem, error)
	GetByContentKey(ctx context.Context, userID uuid.UUID, contentKey string) (*domain.ReviewItem, error)
	Create(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)
	UpdateSchedule(ctx context.Context, userID, itemID uuid.UUID, params domain.ScheduleUpdateParams) (*domain.ReviewItem, error)
	ResetSchedule(ctx context.Context, userID, itemID uuid.UUID, easeFactor float64, now time.Time) (*domain.ReviewItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.ReviewItem, int, error)
	GetDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewItem, error)
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountOverdue(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	ModuleBuckets(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	GetByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error)
	CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	CountNewToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
}

type settingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the spaced-repetition business logic.
type Service struct {
	items    itemRepo
	reviews  reviewLogRepo
	settings settingsRepo
	tx       txManager
	log      *slog.Logger
	config   domain.SRSConfig
}

// NewService creates a new SRS service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	reviews reviewLogRepo,
	settings settingsRepo,
	tx txManager,
	config domain.SRSConfig,
) *Service {
	return &Service{
		items:    items,
		reviews:  reviews,
		settings: settings,
		tx:       tx,
		log:      log.With("service", "srs"),
		config:   config,
	}
}

// configFor merges the service-level SRS config with per-user settings.
func (s *Service) configFor(settings *domain.UserSettings) domain.SRSConfig {
	cfg := s.config
	if settings.DefaultEaseFactor > 0 {
		cfg.DefaultEaseFactor = settings.DefaultEaseFactor
	}
	cfg.FailurePenalty = settings.FailurePenalty
	return cfg
}
