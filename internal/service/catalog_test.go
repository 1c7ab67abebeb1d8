package service

import (
	"testing"

	"perma/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAchievementCatalog(t *testing.T) {
	catalog := NewAchievementCatalog()

	require.NotZero(t, catalog.Size())
	assert.Len(t, catalog.All(), catalog.Size())

	knownTypes := map[model.RequirementType]struct{}{
		model.RequirementLinksCreated:      {},
		model.RequirementTotalViews:        {},
		model.RequirementTotalClicks:       {},
		model.RequirementClickThroughRate:  {},
		model.RequirementStreakDays:        {},
		model.RequirementPlatformDiversity: {},
		model.RequirementEarlyAdopter:      {},
		model.RequirementProfileCompletion: {},
	}

	seen := make(map[string]struct{}, catalog.Size())
	for _, def := range catalog.All() {
		_, duplicate := seen[def.ID]
		assert.False(t, duplicate, "duplicate achievement id %q", def.ID)
		seen[def.ID] = struct{}{}

		assert.NotEmpty(t, def.Title, "achievement %q has no title", def.ID)
		assert.Positive(t, def.Points, "achievement %q has non-positive points", def.ID)
		assert.Contains(t, rarityWeight, def.Rarity, "achievement %q has unknown rarity", def.ID)
		assert.Contains(t, knownTypes, def.Requirement.Type,
			"achievement %q has unknown requirement type", def.ID)
	}
}

func TestAchievementCatalogByID(t *testing.T) {
	catalog := NewAchievementCatalog()

	def, err := catalog.ByID("first_link")
	require.NoError(t, err)
	assert.Equal(t, "first_link", def.ID)
	assert.Equal(t, 10, def.Points)

	_, err = catalog.ByID("no_such_achievement")
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}
