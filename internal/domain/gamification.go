package domain

import (
	"time"

	"github.com/google/uuid"
)

// GamificationState is the per-user XP/level/streak ledger state.
// Calendar dates are "YYYY-MM-DD" strings at the user's local day
// granularity.
type GamificationState struct {
	UserID            uuid.UUID
	Level             int
	CurrentXP         int // XP within the current level
	TotalXP           int // monotonic, never decreases
	CurrentStreak     int
	LongestStreak     int
	LastActiveDate    string
	TodayXP           int
	TodayDate         string
	DailyGoalType     GoalType
	DailyGoalTarget   int
	DailyGoalProgress int
	UpdatedAt         time.Time
}

// DefaultGamificationState returns the state created on a user's first
// XP-earning event. A fresh value is constructed per call; nothing is
// shared or mutated in place.
func DefaultGamificationState(userID uuid.UUID) GamificationState {
	return GamificationState{
		UserID:          userID,
		Level:           1,
		DailyGoalType:   GoalTypeXP,
		DailyGoalTarget: 50,
	}
}

// XPEvent is one XP-earning occurrence fed to the ledger.
type XPEvent struct {
	Amount int
	Source XPSource
}

// AwardResult summarizes the outcome of a single XP award.
type AwardResult struct {
	XPAwarded          int
	NewTotalXP         int
	NewLevel           int
	XPToNextLevel      int
	LeveledUp          bool
	CurrentStreak      int
	DailyGoalProgress  int
	DailyGoalTarget    int
	DailyGoalCompleted bool
}

// StreakInfo is the read-side view of a user's streak. When the stored
// state has gone stale (last activity before yesterday) CurrentStreak
// reads 0 even though the stored value is only corrected on the next
// award.
type StreakInfo struct {
	CurrentStreak int
	LongestStreak int
}
