package srs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

//go:generate moq -out item_repo_mock_test.go -pkg srs . itemRepo

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	GetByIDFunc         func(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewItem, error)
	GetByContentKeyFunc func(ctx context.Context, userID uuid.UUID, contentKey string) (*domain.ReviewItem, error)
	CreateFunc          func(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error)
	UpdateScheduleFunc  func(ctx context.Context, userID, itemID uuid.UUID, params domain.ScheduleUpdateParams) (*domain.ReviewItem, error)
	ResetScheduleFunc   func(ctx context.Context, userID, itemID uuid.UUID, easeFactor float64, now time.Time) (*domain.ReviewItem, error)
	DeleteFunc          func(ctx context.Context, userID, itemID uuid.UUID) error
	ListFunc            func(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.ReviewItem, int, error)
	GetDueFunc          func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewItem, error)
	CountDueFunc        func(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountOverdueFunc    func(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	ModuleBucketsFunc   func(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error)

	calls struct {
		UpdateSchedule []struct {
			UserID uuid.UUID
			ItemID uuid.UUID
			Params domain.ScheduleUpdateParams
		}
		Create []struct {
			Item *domain.ReviewItem
		}
		GetDue []struct {
			Limit int
		}
	}
	lock sync.RWMutex
}

func (m *itemRepoMock) GetByID(ctx context.Context, userID, itemID uuid.UUID) (*domain.ReviewItem, error) {
	if m.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, itemID)
}

func (m *itemRepoMock) GetByContentKey(ctx context.Context, userID uuid.UUID, contentKey string) (*domain.ReviewItem, error) {
	if m.GetByContentKeyFunc == nil {
		panic("itemRepoMock.GetByContentKeyFunc: method is nil but itemRepo.GetByContentKey was just called")
	}
	return m.GetByContentKeyFunc(ctx, userID, contentKey)
}

func (m *itemRepoMock) Create(ctx context.Context, item *domain.ReviewItem) (*domain.ReviewItem, error) {
	if m.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, struct{ Item *domain.ReviewItem }{item})
	m.lock.Unlock()
	return m.CreateFunc(ctx, item)
}

func (m *itemRepoMock) CreateCalls() []struct{ Item *domain.ReviewItem } {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *itemRepoMock) UpdateSchedule(ctx context.Context, userID, itemID uuid.UUID, params domain.ScheduleUpdateParams) (*domain.ReviewItem, error) {
	if m.UpdateScheduleFunc == nil {
		panic("itemRepoMock.UpdateScheduleFunc: method is nil but itemRepo.UpdateSchedule was just called")
	}
	m.lock.Lock()
	m.calls.UpdateSchedule = append(m.calls.UpdateSchedule, struct {
		UserID uuid.UUID
		ItemID uuid.UUID
		Params domain.ScheduleUpdateParams
	}{userID, itemID, params})
	m.lock.Unlock()
	return m.UpdateScheduleFunc(ctx, userID, itemID, params)
}

func (m *itemRepoMock) UpdateScheduleCalls() []struct {
	UserID uuid.UUID
	ItemID uuid.UUID
	Params domain.ScheduleUpdateParams
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.UpdateSchedule
}

func (m *itemRepoMock) ResetSchedule(ctx context.Context, userID, itemID uuid.UUID, easeFactor float64, now time.Time) (*domain.ReviewItem, error) {
	if m.ResetScheduleFunc == nil {
		panic("itemRepoMock.ResetScheduleFunc: method is nil but itemRepo.ResetSchedule was just called")
	}
	return m.ResetScheduleFunc(ctx, userID, itemID, easeFactor, now)
}

func (m *itemRepoMock) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, userID, itemID)
}

func (m *itemRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.ReviewItem, int, error) {
	if m.ListFunc == nil {
		panic("itemRepoMock.ListFunc: method is nil but itemRepo.List was just called")
	}
	return m.ListFunc(ctx, userID, filter)
}

func (m *itemRepoMock) GetDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*domain.ReviewItem, error) {
	if m.GetDueFunc == nil {
		panic("itemRepoMock.GetDueFunc: method is nil but itemRepo.GetDue was just called")
	}
	m.lock.Lock()
	m.calls.GetDue = append(m.calls.GetDue, struct{ Limit int }{limit})
	m.lock.Unlock()
	return m.GetDueFunc(ctx, userID, now, limit)
}

func (m *itemRepoMock) GetDueCalls() []struct{ Limit int } {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.GetDue
}

func (m *itemRepoMock) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	if m.CountDueFunc == nil {
		panic("itemRepoMock.CountDueFunc: method is nil but itemRepo.CountDue was just called")
	}
	return m.CountDueFunc(ctx, userID, now)
}

func (m *itemRepoMock) CountOverdue(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	if m.CountOverdueFunc == nil {
		panic("itemRepoMock.CountOverdueFunc: method is nil but itemRepo.CountOverdue was just called")
	}
	return m.CountOverdueFunc(ctx, userID, dayStart)
}

func (m *itemRepoMock) ModuleBuckets(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.ModuleBuckets, error) {
	if m.ModuleBucketsFunc == nil {
		panic("itemRepoMock.ModuleBucketsFunc: method is nil but itemRepo.ModuleBuckets was just called")
	}
	return m.ModuleBucketsFunc(ctx, userID, now)
}

var _ reviewLogRepo = &reviewLogRepoMock{}

type reviewLogRepoMock struct {
	CreateFunc        func(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	GetByItemIDFunc   func(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error)
	CountTodayFunc    func(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	CountNewTodayFunc func(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)

	calls struct {
		Create []struct {
			Log *domain.ReviewLog
		}
	}
	lock sync.RWMutex
}

func (m *reviewLogRepoMock) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	if m.CreateFunc == nil {
		panic("reviewLogRepoMock.CreateFunc: method is nil but reviewLogRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, struct{ Log *domain.ReviewLog }{log})
	m.lock.Unlock()
	return m.CreateFunc(ctx, log)
}

func (m *reviewLogRepoMock) CreateCalls() []struct{ Log *domain.ReviewLog } {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *reviewLogRepoMock) GetByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.ReviewLog, int, error) {
	if m.GetByItemIDFunc == nil {
		panic("reviewLogRepoMock.GetByItemIDFunc: method is nil but reviewLogRepo.GetByItemID was just called")
	}
	return m.GetByItemIDFunc(ctx, itemID, limit, offset)
}

func (m *reviewLogRepoMock) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	if m.CountTodayFunc == nil {
		panic("reviewLogRepoMock.CountTodayFunc: method is nil but reviewLogRepo.CountToday was just called")
	}
	return m.CountTodayFunc(ctx, userID, dayStart)
}

func (m *reviewLogRepoMock) CountNewToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	if m.CountNewTodayFunc == nil {
		panic("reviewLogRepoMock.CountNewTodayFunc: method is nil but reviewLogRepo.CountNewToday was just called")
	}
	return m.CountNewTodayFunc(ctx, userID, dayStart)
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
