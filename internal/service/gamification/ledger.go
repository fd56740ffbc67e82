// Package gamification implements the XP/level/streak ledger: the pure
// award calculation plus the use cases that load and persist per-user
// gamification state.
package gamification

import (
	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/dateutil"
)

// levelThresholds maps cumulative XP to levels: the highest index whose
// threshold is <= totalXP gives level index+1.
var levelThresholds = []int{
	0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700,
	3250, 3850, 4500, 5200, 6000,
}

// defaultXPToNextLevel applies past the end of the threshold table.
const defaultXPToNextLevel = 1000

// AwardXP applies one XP-earning event to a user's ledger state for the
// given calendar day ("YYYY-MM-DD" in the user's timezone). Pure function:
// the input state is not mutated, persistence is the caller's job.
func AwardXP(state domain.GamificationState, event domain.XPEvent, today string) (domain.GamificationState, domain.AwardResult, error) {
	if event.Amount <= 0 {
		return state, domain.AwardResult{}, domain.NewValidationError("amount", "must be positive")
	}

	next := state
	isNewDay := state.TodayDate != today

	next.TotalXP = state.TotalXP + event.Amount
	if isNewDay {
		next.TodayXP = event.Amount
		next.TodayDate = today
	} else {
		next.TodayXP = state.TodayXP + event.Amount
	}

	level, currentXP, xpToNext := levelForTotalXP(next.TotalXP)
	next.Level = level
	next.CurrentXP = currentXP

	// Streak moves only on the first activity of a day.
	if state.LastActiveDate != today {
		if state.LastActiveDate == dateutil.PrevDay(today) {
			next.CurrentStreak = state.CurrentStreak + 1
		} else {
			next.CurrentStreak = 1
		}
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
	}
	next.LastActiveDate = today

	next.DailyGoalProgress = goalProgress(state, event, isNewDay)

	result := domain.AwardResult{
		XPAwarded:          event.Amount,
		NewTotalXP:         next.TotalXP,
		NewLevel:           next.Level,
		XPToNextLevel:      xpToNext,
		LeveledUp:          next.Level > state.Level,
		CurrentStreak:      next.CurrentStreak,
		DailyGoalProgress:  next.DailyGoalProgress,
		DailyGoalTarget:    next.DailyGoalTarget,
		DailyGoalCompleted: next.DailyGoalTarget > 0 && next.DailyGoalProgress >= next.DailyGoalTarget,
	}

	return next, result, nil
}

// goalProgress advances the daily goal counter. XP goals track the raw
// amount, lesson goals count lesson completions, time goals are fed by
// session tracking rather than XP events. All variants reset with the day.
func goalProgress(state domain.GamificationState, event domain.XPEvent, isNewDay bool) int {
	prev := state.DailyGoalProgress
	if isNewDay {
		prev = 0
	}

	switch state.DailyGoalType {
	case domain.GoalTypeXP:
		return prev + event.Amount
	case domain.GoalTypeLessons:
		if event.Source.IsLessonCompletion() {
			return prev + 1
		}
		return prev
	default:
		return prev
	}
}

// StreakInfo reports the user's streak as of today. A streak broken
// before yesterday reads as 0 here; the stored value stays stale until
// the next AwardXP persists the restart.
func StreakInfo(state domain.GamificationState, today string) domain.StreakInfo {
	current := state.CurrentStreak
	if state.LastActiveDate != today && state.LastActiveDate != dateutil.PrevDay(today) {
		current = 0
	}
	return domain.StreakInfo{
		CurrentStreak: current,
		LongestStreak: state.LongestStreak,
	}
}

// levelForTotalXP finds the highest threshold at or below totalXP.
func levelForTotalXP(totalXP int) (level, currentXP, xpToNext int) {
	idx := 0
	for i, threshold := range levelThresholds {
		if totalXP < threshold {
			break
		}
		idx = i
	}

	level = idx + 1
	currentXP = totalXP - levelThresholds[idx]
	if idx+1 < len(levelThresholds) {
		xpToNext = levelThresholds[idx+1] - levelThresholds[idx]
	} else {
		xpToNext = defaultXPToNextLevel
	}
	return level, currentXP, xpToNext
}
