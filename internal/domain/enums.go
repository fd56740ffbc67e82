package domain

import "strings"

// Module identifies a learning module. The set is closed: module-keyed
// logic switches over these constants instead of open string maps.
type Module string

const (
	ModuleAlphabet   Module = "ALPHABET"
	ModuleVocabulary Module = "VOCABULARY"
	ModuleKanji      Module = "KANJI"
	ModuleGrammar    Module = "GRAMMAR"
	ModuleReading    Module = "READING"
	ModuleListening  Module = "LISTENING"
)

func (m Module) String() string { return string(m) }

// ParseModule maps a wire value onto a Module. Clients send either
// casing ("vocabulary" or "VOCABULARY"); validity is the caller's check
// via IsValid.
func ParseModule(s string) Module { return Module(strings.ToUpper(s)) }

func (m Module) IsValid() bool {
	switch m {
	case ModuleAlphabet, ModuleVocabulary, ModuleKanji, ModuleGrammar,
		ModuleReading, ModuleListening:
		return true
	}
	return false
}

// Modules returns all modules in their fixed iteration order.
// Ties in weakest/strongest module selection are resolved by this order.
func Modules() []Module {
	return []Module{
		ModuleAlphabet,
		ModuleVocabulary,
		ModuleKanji,
		ModuleGrammar,
		ModuleReading,
		ModuleListening,
	}
}

// ItemType classifies the content behind a review item.
type ItemType string

const (
	ItemTypeVocabulary ItemType = "VOCABULARY"
	ItemTypeKanji      ItemType = "KANJI"
	ItemTypeHanzi      ItemType = "HANZI"
	ItemTypeGrammar    ItemType = "GRAMMAR"
	ItemTypeCharacter  ItemType = "CHARACTER"
	ItemTypeReading    ItemType = "READING"
)

func (t ItemType) String() string { return string(t) }

// ParseItemType maps a wire value onto an ItemType, either casing.
func ParseItemType(s string) ItemType { return ItemType(strings.ToUpper(s)) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeVocabulary, ItemTypeKanji, ItemTypeHanzi, ItemTypeGrammar,
		ItemTypeCharacter, ItemTypeReading:
		return true
	}
	return false
}

// MasteryBucket groups review items by how far along they are.
type MasteryBucket string

const (
	BucketNew      MasteryBucket = "NEW"
	BucketLearning MasteryBucket = "LEARNING"
	BucketReview   MasteryBucket = "REVIEW"
	BucketMastered MasteryBucket = "MASTERED"
)

func (b MasteryBucket) String() string { return string(b) }

func (b MasteryBucket) IsValid() bool {
	switch b {
	case BucketNew, BucketLearning, BucketReview, BucketMastered:
		return true
	}
	return false
}

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPSourceLessonComplete XPSource = "LESSON_COMPLETE"
	XPSourceLessonPerfect  XPSource = "LESSON_PERFECT"
	XPSourceReviewCorrect  XPSource = "REVIEW_CORRECT"
	XPSourceStreakBonus    XPSource = "STREAK_BONUS"
	XPSourceDailyGoal      XPSource = "DAILY_GOAL"
	XPSourceAchievement    XPSource = "ACHIEVEMENT"
)

func (s XPSource) String() string { return string(s) }

// ParseXPSource maps a wire value onto an XPSource, either casing.
func ParseXPSource(s string) XPSource { return XPSource(strings.ToUpper(s)) }

func (s XPSource) IsValid() bool {
	switch s {
	case XPSourceLessonComplete, XPSourceLessonPerfect, XPSourceReviewCorrect,
		XPSourceStreakBonus, XPSourceDailyGoal, XPSourceAchievement:
		return true
	}
	return false
}

// IsLessonCompletion reports whether the source counts toward a
// lessons-type daily goal.
func (s XPSource) IsLessonCompletion() bool {
	return s == XPSourceLessonComplete || s == XPSourceLessonPerfect
}

// GoalType is the unit a daily goal is measured in.
type GoalType string

const (
	GoalTypeXP      GoalType = "XP"
	GoalTypeLessons GoalType = "LESSONS"
	GoalTypeTime    GoalType = "TIME"
)

func (g GoalType) String() string { return string(g) }

// ParseGoalType maps a wire value onto a GoalType, either casing.
func ParseGoalType(s string) GoalType { return GoalType(strings.ToUpper(s)) }

func (g GoalType) IsValid() bool {
	switch g {
	case GoalTypeXP, GoalTypeLessons, GoalTypeTime:
		return true
	}
	return false
}

// ReviewUrgency buckets how pressing the review queue is.
type ReviewUrgency string

const (
	UrgencyNone    ReviewUrgency = "NONE"
	UrgencyLow     ReviewUrgency = "LOW"
	UrgencyMedium  ReviewUrgency = "MEDIUM"
	UrgencyHigh    ReviewUrgency = "HIGH"
	UrgencyOverdue ReviewUrgency = "OVERDUE"
)

func (u ReviewUrgency) String() string { return string(u) }

func (u ReviewUrgency) IsValid() bool {
	switch u {
	case UrgencyNone, UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyOverdue:
		return true
	}
	return false
}

// RecommendationKind identifies which source produced a recommendation.
type RecommendationKind string

const (
	RecommendationReviewDue     RecommendationKind = "REVIEW_DUE"
	RecommendationPathMilestone RecommendationKind = "PATH_MILESTONE"
	RecommendationWeakArea      RecommendationKind = "WEAK_AREA"
	RecommendationTopicTrack    RecommendationKind = "TOPIC_TRACK"
	RecommendationDailyGoal     RecommendationKind = "DAILY_GOAL"
)

func (k RecommendationKind) String() string { return string(k) }

func (k RecommendationKind) IsValid() bool {
	switch k {
	case RecommendationReviewDue, RecommendationPathMilestone,
		RecommendationWeakArea, RecommendationTopicTrack, RecommendationDailyGoal:
		return true
	}
	return false
}
