package recommend

import (
	"testing"

	"github.com/lingopath/backend/internal/domain"
)

func TestBuildLearningStats(t *testing.T) {
	t.Parallel()

	buckets := []domain.ModuleBuckets{
		{Module: domain.ModuleVocabulary, New: 5, Learning: 3, Review: 10, Mastered: 2, Due: 4, AvgEaseFactor: 2.4},
		{Module: domain.ModuleKanji, New: 8, Learning: 1, Review: 1, Mastered: 0, Due: 6, AvgEaseFactor: 2.1},
		{Module: domain.ModuleGrammar},
	}

	stats := BuildLearningStats(buckets)

	if len(stats.PerModule) != 3 {
		t.Fatalf("per-module stats: got %d, want 3", len(stats.PerModule))
	}
	if stats.TotalLearned != 30 {
		t.Errorf("totalLearned: got %d, want 30", stats.TotalLearned)
	}
	if stats.TotalDue != 10 {
		t.Errorf("totalDue: got %d, want 10", stats.TotalDue)
	}

	// Vocabulary: 15/20 past new. Kanji: 2/10 past new.
	vocab := stats.PerModule[0]
	if vocab.MasteryFraction != 0.75 {
		t.Errorf("vocabulary mastery: got %v, want 0.75", vocab.MasteryFraction)
	}
	kanji := stats.PerModule[1]
	if kanji.MasteryFraction != 0.2 {
		t.Errorf("kanji mastery: got %v, want 0.2", kanji.MasteryFraction)
	}

	if stats.Weakest == nil || stats.Weakest.Module != domain.ModuleKanji {
		t.Errorf("weakest: got %+v, want KANJI", stats.Weakest)
	}
	if stats.Strongest == nil || stats.Strongest.Module != domain.ModuleVocabulary {
		t.Errorf("strongest: got %+v, want VOCABULARY", stats.Strongest)
	}
}

func TestBuildLearningStats_EmptyModuleNeverWeakest(t *testing.T) {
	t.Parallel()

	buckets := []domain.ModuleBuckets{
		{Module: domain.ModuleReading}, // nothing learned, fraction 0
		{Module: domain.ModuleVocabulary, New: 1, Review: 3},
	}

	stats := BuildLearningStats(buckets)

	if stats.Weakest == nil || stats.Weakest.Module != domain.ModuleVocabulary {
		t.Errorf("weakest: got %+v, want VOCABULARY (empty module excluded)", stats.Weakest)
	}
}

func TestBuildLearningStats_NoBuckets(t *testing.T) {
	t.Parallel()

	stats := BuildLearningStats(nil)

	if stats.Weakest != nil || stats.Strongest != nil {
		t.Errorf("weakest/strongest: got %+v/%+v, want nil/nil", stats.Weakest, stats.Strongest)
	}
	if stats.TotalLearned != 0 || stats.TotalDue != 0 {
		t.Errorf("totals: got %d/%d, want 0/0", stats.TotalLearned, stats.TotalDue)
	}
}
