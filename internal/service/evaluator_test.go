package service

import (
	"testing"
	"time"

	"perma/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateRequirement(t *testing.T) {
	launchDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		req          model.Requirement
		stats        model.UserStats
		wantMet      bool
		wantProgress float64
	}{
		{
			name:         "links below threshold",
			req:          model.Requirement{Type: model.RequirementLinksCreated, Threshold: 10},
			stats:        model.UserStats{LinksCount: 5},
			wantMet:      false,
			wantProgress: 50,
		},
		{
			name:         "links at threshold",
			req:          model.Requirement{Type: model.RequirementLinksCreated, Threshold: 10},
			stats:        model.UserStats{LinksCount: 10},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "progress clamped above threshold",
			req:          model.Requirement{Type: model.RequirementLinksCreated, Threshold: 10},
			stats:        model.UserStats{LinksCount: 250},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "zero threshold always met",
			req:          model.Requirement{Type: model.RequirementTotalViews, Threshold: 0},
			stats:        model.UserStats{},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "views partial progress",
			req:          model.Requirement{Type: model.RequirementTotalViews, Threshold: 1000},
			stats:        model.UserStats{TotalViews: 250},
			wantMet:      false,
			wantProgress: 25,
		},
		{
			name:         "clicks met",
			req:          model.Requirement{Type: model.RequirementTotalClicks, Threshold: 100},
			stats:        model.UserStats{TotalClicks: 130},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "ctr with zero views is zero not an error",
			req:          model.Requirement{Type: model.RequirementClickThroughRate, Threshold: 20},
			stats:        model.UserStats{TotalClicks: 50, TotalViews: 0},
			wantMet:      false,
			wantProgress: 0,
		},
		{
			name:         "ctr met",
			req:          model.Requirement{Type: model.RequirementClickThroughRate, Threshold: 20},
			stats:        model.UserStats{TotalClicks: 25, TotalViews: 100},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "streak partial",
			req:          model.Requirement{Type: model.RequirementStreakDays, Threshold: 30},
			stats:        model.UserStats{StreakDays: 15},
			wantMet:      false,
			wantProgress: 50,
		},
		{
			name: "platform diversity met",
			req:  model.Requirement{Type: model.RequirementPlatformDiversity, Threshold: 5},
			stats: model.UserStats{LinkURLs: []string{
				"https://github.com/someone",
				"https://linkedin.com/in/someone",
				"https://instagram.com/someone",
				"https://youtube.com/@someone",
				"https://tiktok.com/@someone",
			}},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name: "twitter and x share a bucket and unknown domains count once",
			req:  model.Requirement{Type: model.RequirementPlatformDiversity, Threshold: 5},
			stats: model.UserStats{LinkURLs: []string{
				"https://twitter.com/someone",
				"https://x.com/someone",
				"https://myblog.example.com",
				"https://another.example.org",
			}},
			wantMet:      false,
			wantProgress: 40,
		},
		{
			name:         "early adopter within window",
			req:          model.Requirement{Type: model.RequirementEarlyAdopter, Threshold: 1},
			stats:        model.UserStats{CreatedAt: launchDate.Add(10 * 24 * time.Hour)},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "early adopter exactly at cutoff",
			req:          model.Requirement{Type: model.RequirementEarlyAdopter, Threshold: 1},
			stats:        model.UserStats{CreatedAt: launchDate.Add(30 * 24 * time.Hour)},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name:         "early adopter after window",
			req:          model.Requirement{Type: model.RequirementEarlyAdopter, Threshold: 1},
			stats:        model.UserStats{CreatedAt: launchDate.Add(31 * 24 * time.Hour)},
			wantMet:      false,
			wantProgress: 0,
		},
		{
			name: "profile completion full",
			req:  model.Requirement{Type: model.RequirementProfileCompletion, Threshold: 100},
			stats: model.UserStats{
				HasDisplayName:  true,
				HasBio:          true,
				HasProfileImage: true,
				LinksCount:      3,
			},
			wantMet:      true,
			wantProgress: 100,
		},
		{
			name: "profile completion partial",
			req:  model.Requirement{Type: model.RequirementProfileCompletion, Threshold: 100},
			stats: model.UserStats{
				HasDisplayName: true,
				LinksCount:     1,
			},
			wantMet:      false,
			wantProgress: 50,
		},
		{
			name:         "unknown requirement type",
			req:          model.Requirement{Type: "unknown_type", Threshold: 1},
			stats:        model.UserStats{LinksCount: 100},
			wantMet:      false,
			wantProgress: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			met, progress := evaluateRequirement(tc.req, tc.stats, launchDate)

			assert.Equal(t, tc.wantMet, met)
			assert.InDelta(t, tc.wantProgress, progress, 0.01)
		})
	}
}

func TestEvaluateRequirementMonotonicProgress(t *testing.T) {
	req := model.Requirement{Type: model.RequirementTotalViews, Threshold: 1000}

	previous := -1.0
	for _, views := range []int{0, 1, 100, 500, 999, 1000, 5000} {
		_, progress := evaluateRequirement(req, model.UserStats{TotalViews: views}, time.Time{})

		assert.GreaterOrEqual(t, progress, previous, "progress must not decrease as views grow")
		previous = progress
	}
}

func TestClickThroughRate(t *testing.T) {
	testCases := []struct {
		name   string
		clicks int
		views  int
		want   int
	}{
		{name: "zero views", clicks: 10, views: 0, want: 0},
		{name: "rounds half up", clicks: 1, views: 8, want: 13},
		{name: "exact percentage", clicks: 20, views: 100, want: 20},
		{name: "clicks can exceed views", clicks: 300, views: 100, want: 300},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, clickThroughRate(tc.clicks, tc.views))
		})
	}
}

func TestClassifyPlatform(t *testing.T) {
	testCases := []struct {
		url  string
		want string
	}{
		{url: "https://GitHub.com/Someone", want: "github"},
		{url: "https://twitter.com/a", want: "twitter"},
		{url: "https://x.com/a", want: "twitter"},
		{url: "https://facebook.com/a", want: "facebook"},
		{url: "https://example.com/page", want: "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyPlatform(tc.url))
		})
	}
}

func TestProfileCompletionScore(t *testing.T) {
	assert.Equal(t, 0, profileCompletionScore(model.UserStats{}))
	assert.Equal(t, 25, profileCompletionScore(model.UserStats{HasBio: true}))
	assert.Equal(t, 100, profileCompletionScore(model.UserStats{
		HasDisplayName:  true,
		HasBio:          true,
		HasProfileImage: true,
		LinksCount:      1,
	}))
}
