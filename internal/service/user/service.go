// Package user implements user preference operations.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

// settingsRepo defines the settings repository interface needed by user service.
type settingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)
}

// Service implements user settings operations.
type Service struct {
	log      *slog.Logger
	settings settingsRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, settings settingsRepo) *Service {
	return &Service{
		log:      logger.With("service", "user"),
		settings: settings,
	}
}
