package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"perma/internal/model"
	"perma/internal/repository"

	"github.com/google/uuid"
)

const topLinkCount = 5

type AnalyticsService struct {
	repo AnalyticsRepository
}

func NewAnalyticsService(repo AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{
		repo: repo,
	}
}

func (s *AnalyticsService) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	stats, err := s.repo.GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}
	return stats, nil
}

// GetUserStats derives link-level aggregates from the live link collection;
// the click-through rate uses clicks summed over links so it matches what
// the dashboard shows per link.
func (s *AnalyticsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*model.UserAnalytics, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	links, err := s.repo.GetLinks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	activeLinks := 0
	totalClicks := 0
	for _, link := range links {
		if link.IsActive {
			activeLinks++
		}
		totalClicks += link.Clicks
	}

	sorted := make([]*model.Link, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Clicks > sorted[j].Clicks
	})
	if len(sorted) > topLinkCount {
		sorted = sorted[:topLinkCount]
	}

	topLinks := make([]model.LinkPerformance, len(sorted))
	for i, link := range sorted {
		topLinks[i] = model.LinkPerformance{
			LinkID:      link.ID,
			Title:       link.Title,
			URL:         link.URL,
			TotalClicks: link.Clicks,
			IsActive:    link.IsActive,
			CreatedAt:   link.CreatedAt,
			UpdatedAt:   link.UpdatedAt,
		}
	}

	return &model.UserAnalytics{
		TotalViews:       user.Analytics.TotalViews,
		TotalClicks:      totalClicks,
		TotalLinks:       len(links),
		ActiveLinks:      activeLinks,
		ClickThroughRate: clickThroughRate(totalClicks, user.Analytics.TotalViews),
		MonthlyViews:     user.Analytics.MonthlyViews,
		MonthlyClicks:    user.Analytics.MonthlyClicks,
		TopLinks:         topLinks,
	}, nil
}

func (s *AnalyticsService) GetLinkPerformance(ctx context.Context, userID, linkID uuid.UUID) (*model.LinkPerformance, error) {
	link, err := s.repo.GetLinkByID(ctx, userID, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &model.LinkPerformance{
		LinkID:      link.ID,
		Title:       link.Title,
		URL:         link.URL,
		TotalClicks: link.Clicks,
		IsActive:    link.IsActive,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}, nil
}
