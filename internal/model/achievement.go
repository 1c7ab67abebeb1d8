package model

import "time"

type AchievementCategory string

const (
	CategoryBasics      AchievementCategory = "basics"
	CategoryContent     AchievementCategory = "content"
	CategoryEngagement  AchievementCategory = "engagement"
	CategoryPerformance AchievementCategory = "performance"
	CategoryProfile     AchievementCategory = "profile"
	CategorySpecial     AchievementCategory = "special"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type RequirementType string

const (
	RequirementLinksCreated      RequirementType = "links_created"
	RequirementTotalViews        RequirementType = "total_views"
	RequirementTotalClicks       RequirementType = "total_clicks"
	RequirementClickThroughRate  RequirementType = "click_through_rate"
	RequirementStreakDays        RequirementType = "streak_days"
	RequirementPlatformDiversity RequirementType = "platform_diversity"
	RequirementEarlyAdopter      RequirementType = "early_adopter"
	RequirementProfileCompletion RequirementType = "profile_completion"
)

// Requirement is a single predicate over a user state snapshot. Threshold
// is a count or percentage target depending on the requirement type.
type Requirement struct {
	Type      RequirementType
	Threshold int
}

// AchievementDefinition is immutable once published. The id is the stable
// identity key earned records reference; the requirement of a published
// definition must not change meaning.
type AchievementDefinition struct {
	ID          string
	Title       string
	Description string
	Category    AchievementCategory
	Points      int
	Rarity      Rarity
	Requirement Requirement
}

type EarnedAchievement struct {
	AchievementID string
	EarnedAt      time.Time
}

// UserStats is the read model the requirement evaluator consumes. It is
// derived per evaluation pass from the live user record and its links,
// never stored on its own.
type UserStats struct {
	LinksCount      int
	LinkURLs        []string
	TotalViews      int
	TotalClicks     int
	StreakDays      int
	HasDisplayName  bool
	HasBio          bool
	HasProfileImage bool
	CreatedAt       time.Time
}

type AchievementStatus struct {
	AchievementDefinition
	Earned   bool
	EarnedAt *time.Time
	Progress float64
}

type AchievementSummary struct {
	TotalPoints       int
	EarnedCount       int
	TotalAchievements int
	CompletionRate    int
}

type AchievementOverview struct {
	Achievements []AchievementStatus
	Summary      AchievementSummary
}
