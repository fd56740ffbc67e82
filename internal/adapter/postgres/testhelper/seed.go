package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lingopath/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user and user_settings with default values.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:          uuid.New(),
		Email:       "testuser-" + suffix + "@example.com",
		DisplayName: "Test User " + suffix,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.DisplayName, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	settings := domain.DefaultUserSettings(user.ID)
	settings.UpdatedAt = now

	_, err = pool.Exec(ctx,
		`INSERT INTO user_settings (user_id, timezone, new_items_per_day, default_ease_factor,
		                            failure_penalty, daily_goal_type, daily_goal_target, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		settings.UserID, settings.Timezone, settings.NewItemsPerDay, settings.DefaultEaseFactor,
		settings.FailurePenalty, string(settings.DailyGoalType), settings.DailyGoalTarget, settings.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user_settings: %v", err)
	}

	return user
}

// SeedReviewItem creates a review item in the fresh (never reviewed) state:
// interval 0, repetitions 0, due now. Returns the filled domain.ReviewItem.
func SeedReviewItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, module domain.Module) domain.ReviewItem {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.ReviewItem{
		ID:           uuid.New(),
		UserID:       userID,
		ItemID:       "item-" + suffix,
		ItemType:     domain.ItemTypeVocabulary,
		Module:       module,
		LanguageCode: "ja",
		DueAt:        now,
		IntervalDays: 0,
		EaseFactor:   domain.DefaultEaseFactor,
		Repetitions:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	insertReviewItem(ctx, t, pool, item)
	return item
}

// SeedScheduledItem creates a review item with an explicit schedule:
// repetitions, interval and due date are set by the caller.
func SeedScheduledItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, module domain.Module, reps, intervalDays int, dueAt time.Time) domain.ReviewItem {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	lastReview := now.AddDate(0, 0, -intervalDays)
	lastQuality := 4

	item := domain.ReviewItem{
		ID:           uuid.New(),
		UserID:       userID,
		ItemID:       "item-" + suffix,
		ItemType:     domain.ItemTypeVocabulary,
		Module:       module,
		LanguageCode: "ja",
		DueAt:        dueAt.UTC().Truncate(time.Microsecond),
		IntervalDays: intervalDays,
		EaseFactor:   domain.DefaultEaseFactor,
		Repetitions:  reps,
		LastReview:   &lastReview,
		LastQuality:  &lastQuality,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	insertReviewItem(ctx, t, pool, item)
	return item
}

func insertReviewItem(ctx context.Context, t *testing.T, pool *pgxpool.Pool, item domain.ReviewItem) {
	t.Helper()

	_, err := pool.Exec(ctx,
		`INSERT INTO review_items (id, user_id, item_id, item_type, module, language_code,
		                           due_at, interval_days, ease_factor, repetitions,
		                           last_review, last_quality, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		item.ID, item.UserID, item.ItemID, string(item.ItemType), string(item.Module), item.LanguageCode,
		item.DueAt, item.IntervalDays, item.EaseFactor, item.Repetitions,
		item.LastReview, item.LastQuality, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert review_item: %v", err)
	}
}

// SeedGamificationState inserts a gamification state row as-is.
func SeedGamificationState(t *testing.T, pool *pgxpool.Pool, state domain.GamificationState) {
	t.Helper()
	ctx := context.Background()

	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO gamification_states (user_id, level, current_xp, total_xp, current_streak,
		                                  longest_streak, last_active_date, today_xp, today_date,
		                                  daily_goal_type, daily_goal_target, daily_goal_progress, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		state.UserID, state.Level, state.CurrentXP, state.TotalXP, state.CurrentStreak,
		state.LongestStreak, state.LastActiveDate, state.TodayXP, state.TodayDate,
		string(state.DailyGoalType), state.DailyGoalTarget, state.DailyGoalProgress, state.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert gamification_state: %v", err)
	}
}

// SeedPathProgress creates a learning path progress row.
func SeedPathProgress(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, languageCode string, completed, total int) domain.PathProgress {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.PathProgress{
		PathID:              uuid.New(),
		LanguageCode:        languageCode,
		CurrentMilestone:    "Milestone " + uniqueSuffix(),
		CompletedMilestones: completed,
		TotalMilestones:     total,
		UpdatedAt:           now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO path_progress (user_id, path_id, language_code, current_milestone,
		                            completed_milestones, total_milestones, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, p.PathID, p.LanguageCode, p.CurrentMilestone,
		p.CompletedMilestones, p.TotalMilestones, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: insert path_progress: %v", err)
	}

	return p
}

// SeedTopicTrack creates a topic track row.
func SeedTopicTrack(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, languageCode, title string, completed, total int) domain.TopicTrack {
	t.Helper()
	ctx := context.Background()

	track := domain.TopicTrack{
		TrackID:        uuid.New(),
		LanguageCode:   languageCode,
		Title:          title,
		CompletedItems: completed,
		TotalItems:     total,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO topic_tracks (user_id, track_id, language_code, title, completed_items, total_items)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, track.TrackID, track.LanguageCode, track.Title, track.CompletedItems, track.TotalItems,
	)
	if err != nil {
		t.Fatalf("testhelper: insert topic_track: %v", err)
	}

	return track
}
