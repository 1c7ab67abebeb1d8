package service

import (
	"perma/internal/model"
)

// achievementDefinitions is the published achievement table. Ids are stable
// identity keys referenced by earned records; never reuse or repurpose one.
// Threshold tuning is safe, changing a requirement's meaning is not.
var achievementDefinitions = []model.AchievementDefinition{
	{
		ID:          "first_link",
		Title:       "Getting Started",
		Description: "Add your first link",
		Category:    model.CategoryBasics,
		Points:      10,
		Rarity:      model.RarityCommon,
		Requirement: model.Requirement{Type: model.RequirementLinksCreated, Threshold: 1},
	},
	{
		ID:          "link_master",
		Title:       "Link Master",
		Description: "Create 10 links",
		Category:    model.CategoryContent,
		Points:      50,
		Rarity:      model.RarityUncommon,
		Requirement: model.Requirement{Type: model.RequirementLinksCreated, Threshold: 10},
	},
	{
		ID:          "first_hundred_views",
		Title:       "First Impression",
		Description: "Reach 100 profile views",
		Category:    model.CategoryEngagement,
		Points:      25,
		Rarity:      model.RarityCommon,
		Requirement: model.Requirement{Type: model.RequirementTotalViews, Threshold: 100},
	},
	{
		ID:          "thousand_views",
		Title:       "Popular Profile",
		Description: "Reach 1,000 profile views",
		Category:    model.CategoryEngagement,
		Points:      100,
		Rarity:      model.RarityRare,
		Requirement: model.Requirement{Type: model.RequirementTotalViews, Threshold: 1000},
	},
	{
		ID:          "first_hundred_clicks",
		Title:       "Click Magnet",
		Description: "Get 100 total clicks",
		Category:    model.CategoryEngagement,
		Points:      50,
		Rarity:      model.RarityUncommon,
		Requirement: model.Requirement{Type: model.RequirementTotalClicks, Threshold: 100},
	},
	{
		ID:          "thousand_clicks",
		Title:       "Traffic Driver",
		Description: "Reach 1,000 total clicks",
		Category:    model.CategoryEngagement,
		Points:      150,
		Rarity:      model.RarityRare,
		Requirement: model.Requirement{Type: model.RequirementTotalClicks, Threshold: 1000},
	},
	{
		ID:          "week_streak",
		Title:       "Consistent Creator",
		Description: "Active for 7 consecutive days",
		Category:    model.CategoryEngagement,
		Points:      30,
		Rarity:      model.RarityUncommon,
		Requirement: model.Requirement{Type: model.RequirementStreakDays, Threshold: 7},
	},
	{
		ID:          "month_streak",
		Title:       "Dedication Master",
		Description: "Active for 30 consecutive days",
		Category:    model.CategoryEngagement,
		Points:      200,
		Rarity:      model.RarityEpic,
		Requirement: model.Requirement{Type: model.RequirementStreakDays, Threshold: 30},
	},
	{
		ID:          "high_ctr",
		Title:       "Engagement Expert",
		Description: "Achieve 20% click-through rate",
		Category:    model.CategoryPerformance,
		Points:      75,
		Rarity:      model.RarityRare,
		Requirement: model.Requirement{Type: model.RequirementClickThroughRate, Threshold: 20},
	},
	{
		ID:          "social_butterfly",
		Title:       "Social Butterfly",
		Description: "Add links to 5 different platforms",
		Category:    model.CategoryContent,
		Points:      40,
		Rarity:      model.RarityUncommon,
		Requirement: model.Requirement{Type: model.RequirementPlatformDiversity, Threshold: 5},
	},
	{
		ID:          "early_adopter",
		Title:       "Early Adopter",
		Description: "Join Perma in the first month",
		Category:    model.CategorySpecial,
		Points:      100,
		Rarity:      model.RarityLegendary,
		Requirement: model.Requirement{Type: model.RequirementEarlyAdopter, Threshold: 1},
	},
	{
		ID:          "perfectionist",
		Title:       "Perfectionist",
		Description: "Complete your profile 100%",
		Category:    model.CategoryProfile,
		Points:      25,
		Rarity:      model.RarityCommon,
		Requirement: model.Requirement{Type: model.RequirementProfileCompletion, Threshold: 100},
	},
}

// AchievementCatalog is the loaded-once, read-only registry of achievement
// definitions. It is built at startup and never mutated afterwards, so
// concurrent readers are safe without locking.
type AchievementCatalog struct {
	defs []model.AchievementDefinition
	byID map[string]model.AchievementDefinition
}

func NewAchievementCatalog() *AchievementCatalog {
	byID := make(map[string]model.AchievementDefinition, len(achievementDefinitions))
	for _, def := range achievementDefinitions {
		byID[def.ID] = def
	}

	return &AchievementCatalog{
		defs: achievementDefinitions,
		byID: byID,
	}
}

func (c *AchievementCatalog) All() []model.AchievementDefinition {
	return c.defs
}

func (c *AchievementCatalog) ByID(id string) (model.AchievementDefinition, error) {
	def, ok := c.byID[id]
	if !ok {
		return model.AchievementDefinition{}, ErrAchievementNotFound
	}
	return def, nil
}

func (c *AchievementCatalog) Size() int {
	return len(c.defs)
}
