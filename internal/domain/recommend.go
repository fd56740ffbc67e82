package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModuleMasteryStat is the per-module slice of LearningStats.
type ModuleMasteryStat struct {
	Module          Module
	LearnedItems    int
	DueItems        int
	AvgEaseFactor   float64
	Buckets         ModuleBuckets
	MasteryFraction float64
}

// LearningStats aggregates mastery statistics across modules.
// Produced by pure aggregation over ModuleBuckets; owns no persisted state.
type LearningStats struct {
	PerModule []ModuleMasteryStat
	// Weakest and Strongest are nil when no module has any learned items.
	Weakest      *ModuleMasteryStat
	Strongest    *ModuleMasteryStat
	TotalLearned int
	TotalDue     int
}

// ReviewQueueSummary describes the state of the review queue.
type ReviewQueueSummary struct {
	Total            int
	Urgency          ReviewUrgency
	EstimatedMinutes int
}

// PathProgress tracks a user's position on a linear learning path.
type PathProgress struct {
	PathID              uuid.UUID
	LanguageCode        string
	CurrentMilestone    string
	CompletedMilestones int
	TotalMilestones     int
	UpdatedAt           time.Time
}

// TopicTrack is a themed content track (e.g. "Food", "Travel").
type TopicTrack struct {
	TrackID        uuid.UUID
	LanguageCode   string
	Title          string
	CompletedItems int
	TotalItems     int
}

// Started returns true if at least one item of the track is done.
func (t TopicTrack) Started() bool { return t.CompletedItems > 0 }

// Completed returns true if every item of the track is done.
func (t TopicTrack) Completed() bool {
	return t.TotalItems > 0 && t.CompletedItems >= t.TotalItems
}

// Recommendation is one prioritized next action for the user.
type Recommendation struct {
	Kind     RecommendationKind
	Priority int // 1..10, higher first
	Module   *Module
	Title    string
	Detail   string
}
