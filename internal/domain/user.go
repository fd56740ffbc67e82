package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account owning review items and gamification state.
type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserSettings holds per-user SRS and goal preferences.
type UserSettings struct {
	UserID            uuid.UUID
	Timezone          string
	NewItemsPerDay    int
	DefaultEaseFactor float64
	FailurePenalty    bool
	DailyGoalType     GoalType
	DailyGoalTarget   int
	UpdatedAt         time.Time
}

// DefaultUserSettings returns UserSettings with sensible defaults.
// A fresh value is constructed per call.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:            userID,
		Timezone:          "UTC",
		NewItemsPerDay:    20,
		DefaultEaseFactor: DefaultEaseFactor,
		FailurePenalty:    true,
		DailyGoalType:     GoalTypeXP,
		DailyGoalTarget:   50,
	}
}
