package recommend

import (
	"github.com/lingopath/backend/internal/domain"
)

// BuildLearningStats folds per-module bucket counts into the aggregate
// view the ranker consumes. Modules without any learned items never
// become the weakest or strongest pick.
func BuildLearningStats(buckets []domain.ModuleBuckets) domain.LearningStats {
	stats := domain.LearningStats{
		PerModule: make([]domain.ModuleMasteryStat, 0, len(buckets)),
	}

	for _, b := range buckets {
		stat := domain.ModuleMasteryStat{
			Module:          b.Module,
			LearnedItems:    b.Learned(),
			DueItems:        b.Due,
			AvgEaseFactor:   b.AvgEaseFactor,
			Buckets:         b,
			MasteryFraction: b.MasteryFraction(),
		}
		stats.PerModule = append(stats.PerModule, stat)
		stats.TotalLearned += stat.LearnedItems
		stats.TotalDue += stat.DueItems
	}

	for i := range stats.PerModule {
		s := &stats.PerModule[i]
		if s.LearnedItems == 0 {
			continue
		}
		if stats.Weakest == nil || s.MasteryFraction < stats.Weakest.MasteryFraction {
			stats.Weakest = s
		}
		if stats.Strongest == nil || s.MasteryFraction > stats.Strongest.MasteryFraction {
			stats.Strongest = s
		}
	}

	return stats
}
