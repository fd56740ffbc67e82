package gamification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type stateRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error)
	Upsert(ctx context.Context, state *domain.GamificationState) (*domain.GamificationState, error)
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

// defaultMaxAwardAmount bounds a single XP event when no limit is
// configured; larger grants arrive as multiple events.
const defaultMaxAwardAmount = 10_000

// Config holds tunable gamification parameters.
type Config struct {
	MaxAwardAmount int
}

// Service implements the gamification business logic.
type Service struct {
	states   stateRepo
	settings settingsRepo
	tx       txManager
	log      *slog.Logger
	maxAward int
}

// NewService creates a new gamification service.
func NewService(log *slog.Logger, states stateRepo, settings settingsRepo, tx txManager, cfg Config) *Service {
	maxAward := cfg.MaxAwardAmount
	if maxAward <= 0 {
		maxAward = defaultMaxAwardAmount
	}
	return &Service{
		states:   states,
		settings: settings,
		tx:       tx,
		log:      log.With("service", "gamification"),
		maxAward: maxAward,
	}
}
