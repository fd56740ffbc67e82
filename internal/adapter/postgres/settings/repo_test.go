package settings_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingopath/backend/internal/adapter/postgres/settings"
	"github.com/lingopath/backend/internal/adapter/postgres/testhelper"
	"github.com/lingopath/backend/internal/domain"
)

func newRepo(t *testing.T) (*settings.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return settings.New(pool), pool
}

func TestRepo_GetByUserID_ReturnsStoredRow(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	// SeedUser inserts settings with defaults.
	user := testhelper.SeedUser(t, pool)

	got, err := repo.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: unexpected error: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", got.UserID, user.ID)
	}
	if got.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", got.Timezone)
	}
	if got.NewItemsPerDay != 20 {
		t.Errorf("NewItemsPerDay = %d, want 20", got.NewItemsPerDay)
	}
}

func TestRepo_GetByUserID_DefaultsWhenMissing(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	// No row for this user: defaults, not ErrNotFound.
	userID := uuid.New()
	got, err := repo.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetByUserID: unexpected error: %v", err)
	}

	want := domain.DefaultUserSettings(userID)
	if got.Timezone != want.Timezone || got.NewItemsPerDay != want.NewItemsPerDay {
		t.Errorf("defaults mismatch: got %+v", got)
	}
	if got.DefaultEaseFactor != want.DefaultEaseFactor {
		t.Errorf("DefaultEaseFactor = %f, want %f", got.DefaultEaseFactor, want.DefaultEaseFactor)
	}
	if !got.FailurePenalty {
		t.Error("FailurePenalty should default to true")
	}
}

func TestRepo_Upsert_UpdatesExistingRow(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	s := domain.DefaultUserSettings(user.ID)
	s.Timezone = "Asia/Tokyo"
	s.NewItemsPerDay = 5
	s.FailurePenalty = false
	s.DailyGoalType = domain.GoalTypeLessons
	s.DailyGoalTarget = 3

	updated, err := repo.Upsert(ctx, &s)
	if err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}
	if updated.Timezone != "Asia/Tokyo" || updated.NewItemsPerDay != 5 {
		t.Errorf("updated settings mismatch: %+v", updated)
	}
	if updated.FailurePenalty {
		t.Error("FailurePenalty should be false after update")
	}

	got, err := repo.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: unexpected error: %v", err)
	}
	if got.DailyGoalType != domain.GoalTypeLessons || got.DailyGoalTarget != 3 {
		t.Errorf("goal mismatch: type=%s target=%d", got.DailyGoalType, got.DailyGoalTarget)
	}
}
