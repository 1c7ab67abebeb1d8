package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"perma/internal/model"
	"perma/internal/repository"
	"perma/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var rarityWeight = map[model.Rarity]int{
	model.RarityCommon:    1,
	model.RarityUncommon:  2,
	model.RarityRare:      3,
	model.RarityEpic:      4,
	model.RarityLegendary: 5,
}

type AchievementService struct {
	repo       AchievementRepository
	catalog    *AchievementCatalog
	launchDate time.Time

	now func() time.Time
}

func NewAchievementService(repo AchievementRepository, catalog *AchievementCatalog, launchDate time.Time) *AchievementService {
	return &AchievementService{
		repo:       repo,
		catalog:    catalog,
		launchDate: launchDate,
		now:        time.Now,
	}
}

func buildUserStats(user *model.User, links []*model.Link) model.UserStats {
	urls := make([]string, len(links))
	for i, link := range links {
		urls[i] = link.URL
	}

	return model.UserStats{
		LinksCount:      len(links),
		LinkURLs:        urls,
		TotalViews:      user.Analytics.TotalViews,
		TotalClicks:     user.Analytics.TotalClicks,
		StreakDays:      user.StreakDays,
		HasDisplayName:  user.DisplayName != "",
		HasBio:          user.Bio != "",
		HasProfileImage: user.ProfileImage != "",
		CreatedAt:       user.CreatedAt,
	}
}

func (s *AchievementService) loadUserState(ctx context.Context, userID uuid.UUID) (*model.User, model.UserStats, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.UserStats{}, ErrUserNotFound
		}
		return nil, model.UserStats{}, fmt.Errorf("failed to get user: %w", err)
	}

	links, err := s.repo.GetLinks(ctx, userID)
	if err != nil {
		return nil, model.UserStats{}, fmt.Errorf("failed to get links: %w", err)
	}

	return user, buildUserStats(user, links), nil
}

// GetAchievements merges the full catalog with the user's earned state and
// per-requirement progress, earned entries first.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uuid.UUID) (*model.AchievementOverview, error) {
	user, stats, err := s.loadUserState(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.repo.GetEarnedAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned achievements: %w", err)
	}

	earnedAt := make(map[string]time.Time, len(earned))
	for _, ea := range earned {
		if _, err := s.catalog.ByID(ea.AchievementID); err != nil {
			logger.Logger().Warn("earned achievement references unknown catalog id",
				zap.String("achievement_id", ea.AchievementID))
			continue
		}
		earnedAt[ea.AchievementID] = ea.EarnedAt
	}

	statuses := make([]model.AchievementStatus, 0, s.catalog.Size())
	for _, def := range s.catalog.All() {
		status := model.AchievementStatus{AchievementDefinition: def}

		if at, ok := earnedAt[def.ID]; ok {
			earnedTime := at
			status.Earned = true
			status.EarnedAt = &earnedTime
			status.Progress = 100
		} else {
			_, status.Progress = evaluateRequirement(def.Requirement, stats, s.launchDate)
		}

		statuses = append(statuses, status)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		a, b := statuses[i], statuses[j]
		if a.Earned != b.Earned {
			return a.Earned
		}
		if rarityWeight[a.Rarity] != rarityWeight[b.Rarity] {
			return rarityWeight[a.Rarity] > rarityWeight[b.Rarity]
		}
		return a.Points > b.Points
	})

	total := s.catalog.Size()
	earnedCount := len(earnedAt)

	return &model.AchievementOverview{
		Achievements: statuses,
		Summary: model.AchievementSummary{
			TotalPoints:       user.AchievementPoints,
			EarnedCount:       earnedCount,
			TotalAchievements: total,
			CompletionRate:    int(math.Round(float64(earnedCount) / float64(total) * 100)),
		},
	}, nil
}

// CheckAndAward evaluates every catalog definition the user has not earned
// yet and persists the newly met ones together with their points in a single
// atomic batch. Already-earned ids are excluded before evaluation, which is
// what makes repeated checks idempotent; do not reorder the filter after the
// evaluation. Returns only the definitions newly earned by this call and the
// points actually credited.
func (s *AchievementService) CheckAndAward(ctx context.Context, userID uuid.UUID) ([]model.AchievementDefinition, int, error) {
	user, stats, err := s.loadUserState(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	earned, err := s.repo.GetEarnedAchievements(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get earned achievements: %w", err)
	}

	earnedSet := make(map[string]struct{}, len(earned))
	for _, ea := range earned {
		earnedSet[ea.AchievementID] = struct{}{}
	}

	now := s.now().UTC()
	var newly []model.EarnedAchievement
	points := make(map[string]int)

	for _, def := range s.catalog.All() {
		if _, ok := earnedSet[def.ID]; ok {
			continue
		}

		met, _ := evaluateRequirement(def.Requirement, stats, s.launchDate)
		if !met {
			continue
		}

		newly = append(newly, model.EarnedAchievement{
			AchievementID: def.ID,
			EarnedAt:      now,
		})
		points[def.ID] = def.Points
	}

	if len(newly) == 0 {
		return nil, 0, nil
	}

	insertedIDs, pointsEarned, err := s.repo.AppendAchievements(ctx, user.ID, newly, points)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to append achievements: %w", err)
	}

	awarded := make([]model.AchievementDefinition, 0, len(insertedIDs))
	for _, id := range insertedIDs {
		def, err := s.catalog.ByID(id)
		if err != nil {
			logger.Logger().Warn("awarded achievement missing from catalog",
				zap.String("achievement_id", id))
			continue
		}
		awarded = append(awarded, def)
	}

	return awarded, pointsEarned, nil
}

// UpdateStreak records activity for today and returns the resulting
// consecutive-active-day count. Same-day repeats leave the streak untouched,
// a one-day gap continues it, anything longer resets it to one. A last
// active date in the future (clock skew, client-supplied dates) is treated
// as a no-op.
func (s *AchievementService) UpdateStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get user: %w", err)
	}

	today := s.now().UTC()
	streak, changed := nextStreak(user.StreakDays, user.LastActiveDate, today)
	if !changed {
		return streak, nil
	}

	err = s.repo.UpdateStreak(ctx, userID, streak, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to update streak: %w", err)
	}

	return streak, nil
}

// nextStreak is the day-granularity streak state machine. The boolean
// reports whether the record needs persisting.
func nextStreak(current int, lastActive *time.Time, today time.Time) (int, bool) {
	if lastActive == nil {
		return 1, true
	}

	switch days := calendarDaysBetween(*lastActive, today); {
	case days < 0:
		return current, false
	case days == 0:
		return current, false
	case days == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

// calendarDaysBetween counts whole UTC calendar days from one instant's date
// to another's, so 23:59 to 00:01 the next day still counts as one day.
func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
