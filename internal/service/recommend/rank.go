// Package recommend turns aggregate learning statistics into a short
// prioritized list of next actions. The ranking itself is a pure function
// over precomputed stats; the service gathers the inputs.
package recommend

import (
	"fmt"
	"sort"

	"github.com/lingopath/backend/internal/domain"
)

const (
	// maxRecommendations caps the ranked output.
	maxRecommendations = 5

	// reviewBacklogCutoff is the queue size above which new-content
	// suggestions are suppressed: reviews come first.
	reviewBacklogCutoff = 20

	// weakMasteryThreshold marks a module as needing focused practice.
	weakMasteryThreshold = 0.5

	// maxTopicTracks limits how many track suggestions one response carries.
	maxTopicTracks = 2
)

// RankInput is everything the ranker looks at. All fields are
// precomputed aggregates; Rank itself does no I/O.
type RankInput struct {
	Stats        domain.LearningStats
	Queue        domain.ReviewQueueSummary
	Paths        []domain.PathProgress
	Tracks       []domain.TopicTrack
	LanguageCode string
}

// Rank produces at most five recommendations ordered by descending
// priority. Candidates with equal priority keep their source order:
// reviews, path milestones, weak areas, topic tracks, new content.
func Rank(in RankInput) []domain.Recommendation {
	var recs []domain.Recommendation

	if r, ok := reviewDueCandidate(in.Queue); ok {
		recs = append(recs, r)
	}
	if r, ok := pathMilestoneCandidate(in.Paths, in.LanguageCode); ok {
		recs = append(recs, r)
	}
	if r, ok := weakAreaCandidate(in.Stats); ok {
		recs = append(recs, r)
	}
	recs = append(recs, topicTrackCandidates(in.Tracks, in.LanguageCode)...)
	if r, ok := newContentCandidate(in.Queue); ok {
		recs = append(recs, r)
	}

	// Stable keeps insertion order within a priority tier.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// reviewDueCandidate pushes the user toward their queue. Anything a full
// day overdue gets top priority; otherwise priority scales with queue
// size.
func reviewDueCandidate(queue domain.ReviewQueueSummary) (domain.Recommendation, bool) {
	if queue.Total == 0 {
		return domain.Recommendation{}, false
	}

	priority := queue.Total/5 + 3
	if priority > 10 {
		priority = 10
	}
	if queue.Urgency == domain.UrgencyOverdue {
		priority = 10
	}

	return domain.Recommendation{
		Kind:     domain.RecommendationReviewDue,
		Priority: priority,
		Title:    fmt.Sprintf("Review %d due items", queue.Total),
		Detail:   fmt.Sprintf("about %d min", queue.EstimatedMinutes),
	}, true
}

// pathMilestoneCandidate takes the first path for the active language
// that still has a current milestone. The very first milestone of a path
// outranks later ones: getting started matters more than keeping going.
func pathMilestoneCandidate(paths []domain.PathProgress, lang string) (domain.Recommendation, bool) {
	for _, p := range paths {
		if p.LanguageCode != lang || p.CurrentMilestone == "" {
			continue
		}

		priority := 6
		if p.CompletedMilestones == 0 {
			priority = 8
		}

		return domain.Recommendation{
			Kind:     domain.RecommendationPathMilestone,
			Priority: priority,
			Title:    p.CurrentMilestone,
			Detail:   fmt.Sprintf("milestone %d of %d", p.CompletedMilestones+1, p.TotalMilestones),
		}, true
	}
	return domain.Recommendation{}, false
}

func weakAreaCandidate(stats domain.LearningStats) (domain.Recommendation, bool) {
	weakest := stats.Weakest
	if weakest == nil || weakest.MasteryFraction >= weakMasteryThreshold {
		return domain.Recommendation{}, false
	}

	module := weakest.Module
	return domain.Recommendation{
		Kind:     domain.RecommendationWeakArea,
		Priority: 7,
		Module:   &module,
		Title:    fmt.Sprintf("Practice %s", module),
		Detail:   fmt.Sprintf("%.0f%% mastery", weakest.MasteryFraction*100),
	}, true
}

func topicTrackCandidates(tracks []domain.TopicTrack, lang string) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, t := range tracks {
		if t.LanguageCode != lang || t.Completed() {
			continue
		}

		priority := 4
		if t.Started() {
			priority = 5
		}

		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendationTopicTrack,
			Priority: priority,
			Title:    t.Title,
			Detail:   fmt.Sprintf("%d of %d done", t.CompletedItems, t.TotalItems),
		})
		if len(recs) == maxTopicTracks {
			break
		}
	}
	return recs
}

// newContentCandidate suggests fresh material only while the review
// backlog is under control.
func newContentCandidate(queue domain.ReviewQueueSummary) (domain.Recommendation, bool) {
	if queue.Total >= reviewBacklogCutoff {
		return domain.Recommendation{}, false
	}

	return domain.Recommendation{
		Kind:     domain.RecommendationDailyGoal,
		Priority: 5,
		Title:    "Learn something new",
		Detail:   "your review queue is under control",
	}, true
}
