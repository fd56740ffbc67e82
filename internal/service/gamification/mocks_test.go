package gamification

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

var _ stateRepo = &stateRepoMock{}

type stateRepoMock struct {
	GetByUserIDFunc  func(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error)
	GetForUpdateFunc func(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error)
	UpsertFunc       func(ctx context.Context, state *domain.GamificationState) (*domain.GamificationState, error)

	calls struct {
		Upsert []struct {
			State *domain.GamificationState
		}
	}
	lock sync.RWMutex
}

func (m *stateRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	if m.GetByUserIDFunc == nil {
		panic("stateRepoMock.GetByUserIDFunc: method is nil but stateRepo.GetByUserID was just called")
	}
	return m.GetByUserIDFunc(ctx, userID)
}

func (m *stateRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.GamificationState, error) {
	if m.GetForUpdateFunc == nil {
		panic("stateRepoMock.GetForUpdateFunc: method is nil but stateRepo.GetForUpdate was just called")
	}
	return m.GetForUpdateFunc(ctx, userID)
}

func (m *stateRepoMock) Upsert(ctx context.Context, state *domain.GamificationState) (*domain.GamificationState, error) {
	if m.UpsertFunc == nil {
		panic("stateRepoMock.UpsertFunc: method is nil but stateRepo.Upsert was just called")
	}
	m.lock.Lock()
	m.calls.Upsert = append(m.calls.Upsert, struct{ State *domain.GamificationState }{state})
	m.lock.Unlock()
	return m.UpsertFunc(ctx, state)
}

func (m *stateRepoMock) UpsertCalls() []struct{ State *domain.GamificationState } {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Upsert
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly, without a transaction.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

func (m *settingsRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if m.GetByUserIDFunc == nil {
		panic("settingsRepoMock.GetByUserIDFunc: method is nil but settingsRepo.GetByUserID was just called")
	}
	return m.GetByUserIDFunc(ctx, userID)
}
