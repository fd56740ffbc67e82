package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mastery bucket thresholds in days. The 21-day cutoff mirrors the classic
// Anki "mature" boundary; both values are tunable, not semantically exact.
const (
	ReviewBucketMinDays   = 1
	MasteredBucketMinDays = 21
)

// MinEaseFactor is the hard floor for the SM-2 ease factor.
const MinEaseFactor = 1.3

// DefaultEaseFactor is the ease factor assigned to freshly learned items.
const DefaultEaseFactor = 2.5

// ReviewItem is one spaced-repetition card: a single user's scheduling
// state for a single content item.
type ReviewItem struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ItemID       string // content key, unique per user
	ItemType     ItemType
	Module       Module
	LanguageCode string
	DueAt        time.Time
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	LastReview   *time.Time
	LastQuality  *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDue returns true if the item is eligible for review at the given time.
func (i *ReviewItem) IsDue(now time.Time) bool {
	return !i.DueAt.After(now)
}

// IsOverdue returns true if the item was already due before the start of
// the current day (overdue by at least one full day).
func (i *ReviewItem) IsOverdue(dayStart time.Time) bool {
	return i.DueAt.Before(dayStart)
}

// Bucket classifies the item into a mastery bucket by repetitions and
// interval.
func (i *ReviewItem) Bucket() MasteryBucket {
	switch {
	case i.Repetitions == 0:
		return BucketNew
	case i.IntervalDays < ReviewBucketMinDays:
		return BucketLearning
	case i.IntervalDays < MasteredBucketMinDays:
		return BucketReview
	default:
		return BucketMastered
	}
}

// SRSConfig holds the SM-2 scheduler parameters (pure domain type).
type SRSConfig struct {
	DefaultEaseFactor float64
	MinEaseFactor     float64
	// FailurePenalty controls the failed-recall ease policy: when true a
	// lapse also subtracts 0.2 from the ease factor (floored at
	// MinEaseFactor); when false a lapse only resets repetitions and
	// interval.
	FailurePenalty bool
	// QueueLimit is the queue size used when the caller does not request
	// an explicit limit.
	QueueLimit int
}

// ScheduleUpdateParams holds the scheduling fields to persist on a review
// item after an SM-2 calculation.
type ScheduleUpdateParams struct {
	DueAt        time.Time
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	LastReview   time.Time
	LastQuality  int
}

// ReviewLog records a single review event for an item.
type ReviewLog struct {
	ID         uuid.UUID
	ItemID     uuid.UUID // ReviewItem.ID
	UserID     uuid.UUID
	Quality    int
	PrevState  *ReviewSnapshot
	DurationMs *int
	ReviewedAt time.Time
}

// ReviewSnapshot captures the scheduling state of an item before a review.
type ReviewSnapshot struct {
	DueAt        time.Time
	IntervalDays int
	EaseFactor   float64
	Repetitions  int
	LastReview   *time.Time
	LastQuality  *int
}

// ItemFilter defines parameters for listing review items. Nil pointer
// fields mean "no restriction". Normalization of sort and pagination
// defaults happens at the persistence layer.
type ItemFilter struct {
	Module       *Module
	ItemType     *ItemType
	LanguageCode *string
	DueBefore    *time.Time

	// SortBy: "due_at", "created_at", "interval_days". Default "due_at".
	SortBy string
	// SortOrder: "ASC" or "DESC". Default "ASC".
	SortOrder string

	Limit  int
	Offset int
}

// ModuleBuckets holds per-module mastery bucket counts plus the aggregates
// the ranker needs. Derived in SQL, never persisted as its own entity.
type ModuleBuckets struct {
	Module        Module
	New           int
	Learning      int
	Review        int
	Mastered      int
	Due           int
	AvgEaseFactor float64
}

// Learned returns the number of items in the module that exist at all.
func (b ModuleBuckets) Learned() int {
	return b.New + b.Learning + b.Review + b.Mastered
}

// MasteryFraction returns the proportion of learned items that have
// progressed past the NEW bucket. Returns 0 when nothing is learned.
func (b ModuleBuckets) MasteryFraction() float64 {
	learned := b.Learned()
	if learned == 0 {
		return 0
	}
	return float64(learned-b.New) / float64(learned)
}
