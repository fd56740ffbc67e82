package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	UpsertFunc      func(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error)

	calls struct {
		Upsert []struct {
			Settings *domain.UserSettings
		}
	}
	lock sync.RWMutex
}

func (m *settingsRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if m.GetByUserIDFunc == nil {
		panic("settingsRepoMock.GetByUserIDFunc: method is nil but settingsRepo.GetByUserID was just called")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *settingsRepoMock) Upsert(ctx context.Context, s *domain.UserSettings) (*domain.UserSettings, error) {
	if m.UpsertFunc == nil {
		panic("settingsRepoMock.UpsertFunc: method is nil but settingsRepo.Upsert was just called")
	}
	m.lock.Lock()
	m.calls.Upsert = append(m.calls.Upsert, struct{ Settings *domain.UserSettings }{s})
	m.lock.Unlock()
	return m.UpsertFunc(ctx, s)
}

func (m *settingsRepoMock) UpsertCalls() []struct{ Settings *domain.UserSettings } {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Upsert
}
