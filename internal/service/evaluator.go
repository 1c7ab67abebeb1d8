package service

import (
	"math"
	"strings"
	"time"

	"perma/internal/model"
)

const (
	earlyAdopterWindow = 30 * 24 * time.Hour

	profileFieldWeight = 25
)

// evaluateRequirement decides whether a single requirement is met by the
// given user state snapshot and how far along it is, as a 0-100 percentage.
// It is pure: re-running it against the same snapshot always yields the same
// result, which is what makes re-checking achievements safe at any time.
// Unknown requirement types evaluate to not-met with zero progress.
func evaluateRequirement(req model.Requirement, stats model.UserStats, launchDate time.Time) (bool, float64) {
	switch req.Type {
	case model.RequirementLinksCreated:
		return countRequirement(stats.LinksCount, req.Threshold)
	case model.RequirementTotalViews:
		return countRequirement(stats.TotalViews, req.Threshold)
	case model.RequirementTotalClicks:
		return countRequirement(stats.TotalClicks, req.Threshold)
	case model.RequirementClickThroughRate:
		return countRequirement(clickThroughRate(stats.TotalClicks, stats.TotalViews), req.Threshold)
	case model.RequirementStreakDays:
		return countRequirement(stats.StreakDays, req.Threshold)
	case model.RequirementPlatformDiversity:
		return countRequirement(countPlatforms(stats.LinkURLs), req.Threshold)
	case model.RequirementEarlyAdopter:
		if !stats.CreatedAt.After(launchDate.Add(earlyAdopterWindow)) {
			return true, 100
		}
		return false, 0
	case model.RequirementProfileCompletion:
		score := profileCompletionScore(stats)
		return score >= req.Threshold || req.Threshold <= 0, clampProgress(float64(score))
	default:
		return false, 0
	}
}

// countRequirement compares a monotonic counter against a threshold. A zero
// or negative threshold is treated as always met to keep the progress
// division safe.
func countRequirement(count, threshold int) (bool, float64) {
	if threshold <= 0 {
		return true, 100
	}
	return count >= threshold, clampProgress(float64(count) / float64(threshold) * 100)
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// clickThroughRate is the rounded percentage of clicks per view. Zero views
// means zero rate, never a division error.
func clickThroughRate(clicks, views int) int {
	if views <= 0 {
		return 0
	}
	return int(math.Round(float64(clicks) / float64(views) * 100))
}

// linkPlatforms maps a URL substring to a recognized platform bucket.
// Twitter and X share one bucket; anything unrecognized falls into a single
// shared "other" bucket regardless of domain.
var linkPlatforms = []struct {
	match    string
	platform string
}{
	{"github.com", "github"},
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"instagram.com", "instagram"},
	{"youtube.com", "youtube"},
	{"tiktok.com", "tiktok"},
	{"facebook.com", "facebook"},
}

func countPlatforms(urls []string) int {
	platforms := make(map[string]struct{})
	for _, u := range urls {
		platforms[classifyPlatform(u)] = struct{}{}
	}
	return len(platforms)
}

func classifyPlatform(url string) string {
	lowered := strings.ToLower(url)
	for _, p := range linkPlatforms {
		if strings.Contains(lowered, p.match) {
			return p.platform
		}
	}
	return "other"
}

// profileCompletionScore weights displayName, bio, profile image and having
// at least one link at 25 points each, capped at 100.
func profileCompletionScore(stats model.UserStats) int {
	score := 0
	if stats.HasDisplayName {
		score += profileFieldWeight
	}
	if stats.HasBio {
		score += profileFieldWeight
	}
	if stats.HasProfileImage {
		score += profileFieldWeight
	}
	if stats.LinksCount > 0 {
		score += profileFieldWeight
	}
	return score
}
