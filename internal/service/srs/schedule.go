package srs

import (
	"math"
	"time"

	"github.com/lingopath/backend/internal/domain"
)

const (
	// Quality bounds. Out-of-range values are clamped, never rejected.
	minQuality = 0
	maxQuality = 5

	// passingQuality is the lowest quality counted as a successful recall.
	passingQuality = 3

	// First two successful intervals are fixed (classic SM-2).
	firstInterval  = 1
	secondInterval = 6

	// lapsePenalty is subtracted from the ease factor on a failed recall
	// when the failure-penalty policy is enabled.
	lapsePenalty = 0.2
)

// ScheduleInput holds all data needed for one scheduling step.
// Pure value, no side effects.
type ScheduleInput struct {
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	Quality      int
	Now          time.Time
	Config       domain.SRSConfig
}

// ScheduleOutput is the result of one scheduling step.
type ScheduleOutput struct {
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	DueAt        time.Time
	Quality      int // the clamped quality that was applied
}

// Schedule computes the next review interval, ease factor, repetition
// count, and due timestamp for an item given a recall-quality signal.
// SM-2 variant: pure, total, and deterministic — all decisions follow from
// the input alone and callers never see an error.
func Schedule(input ScheduleInput) ScheduleOutput {
	quality := clampQuality(input.Quality)

	minEase := input.Config.MinEaseFactor
	if minEase <= 0 {
		minEase = domain.MinEaseFactor
	}

	if quality < passingQuality {
		return scheduleLapse(input, quality, minEase)
	}
	return scheduleSuccess(input, quality, minEase)
}

func scheduleSuccess(input ScheduleInput, quality int, minEase float64) ScheduleOutput {
	// SM-2 ease update: quality 5 gains +0.1, quality 4 is neutral,
	// quality 3 loses 0.14. No upper bound — long-term items may grow
	// arbitrarily easy.
	miss := float64(maxQuality - quality)
	ease := input.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if ease < minEase {
		ease = minEase
	}

	var interval int
	switch input.Repetitions {
	case 0:
		interval = firstInterval
	case 1:
		interval = secondInterval
	default:
		interval = int(math.Round(float64(input.IntervalDays) * ease))
	}

	return ScheduleOutput{
		IntervalDays: interval,
		EaseFactor:   ease,
		Repetitions:  input.Repetitions + 1,
		DueAt:        dueAt(input.Now, interval),
		Quality:      quality,
	}
}

func scheduleLapse(input ScheduleInput, quality int, minEase float64) ScheduleOutput {
	ease := input.EaseFactor
	if input.Config.FailurePenalty {
		ease = math.Max(minEase, ease-lapsePenalty)
	}

	return ScheduleOutput{
		IntervalDays: firstInterval,
		EaseFactor:   ease,
		Repetitions:  0,
		DueAt:        dueAt(input.Now, firstInterval),
		Quality:      quality,
	}
}

func dueAt(now time.Time, intervalDays int) time.Time {
	return now.Add(time.Duration(intervalDays) * 24 * time.Hour)
}

func clampQuality(q int) int {
	if q < minQuality {
		return minQuality
	}
	if q > maxQuality {
		return maxQuality
	}
	return q
}
