package mocks

import (
	"context"
	"time"

	"perma/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementProfileViews(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) ListPublicProfiles(ctx context.Context, search, orderBy string, limit, offset uint64) ([]*model.PublicProfile, error) {
	args := m.Called(ctx, search, orderBy, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PublicProfile), args.Error(1)
}

func (m *MockUserRepository) CountPublicProfiles(ctx context.Context, search string) (int, error) {
	args := m.Called(ctx, search)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Link), args.Error(1)
}

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Link), args.Error(1)
}

func (m *MockLinkRepository) GetLinkByID(ctx context.Context, userID, linkID uuid.UUID) (*model.Link, error) {
	args := m.Called(ctx, userID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}

func (m *MockLinkRepository) AddLink(ctx context.Context, link *model.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, update model.LinkUpdate) (*model.Link, error) {
	args := m.Called(ctx, userID, linkID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}

func (m *MockLinkRepository) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	args := m.Called(ctx, userID, linkID)
	return args.Error(0)
}

func (m *MockLinkRepository) ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) ([]*model.Link, error) {
	args := m.Called(ctx, userID, linkIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Link), args.Error(1)
}

func (m *MockLinkRepository) TrackClick(ctx context.Context, username string, linkID uuid.UUID) error {
	args := m.Called(ctx, username, linkID)
	return args.Error(0)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAchievementRepository) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Link), args.Error(1)
}

func (m *MockAchievementRepository) GetEarnedAchievements(ctx context.Context, userID uuid.UUID) ([]model.EarnedAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EarnedAchievement), args.Error(1)
}

func (m *MockAchievementRepository) AppendAchievements(ctx context.Context, userID uuid.UUID, earned []model.EarnedAchievement, points map[string]int) ([]string, int, error) {
	args := m.Called(ctx, userID, earned, points)
	var inserted []string
	if args.Get(0) != nil {
		inserted = args.Get(0).([]string)
	}
	return inserted, args.Int(1), args.Error(2)
}

func (m *MockAchievementRepository) UpdateStreak(ctx context.Context, userID uuid.UUID, streakDays int, lastActiveDate time.Time) error {
	args := m.Called(ctx, userID, streakDays, lastActiveDate)
	return args.Error(0)
}

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlatformStats), args.Error(1)
}

func (m *MockAnalyticsRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAnalyticsRepository) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Link), args.Error(1)
}

func (m *MockAnalyticsRepository) GetLinkByID(ctx context.Context, userID, linkID uuid.UUID) (*model.Link, error) {
	args := m.Called(ctx, userID, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}
