package service

import (
	"context"
	"errors"
	"time"

	"perma/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrLinkNotFound       = errors.New("link not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")

	ErrAchievementNotFound = errors.New("achievement not found in catalog")
)

type Service struct {
	*UserService
	*LinkService
	*AchievementService
	*AnalyticsService
}

func NewService(
	userService *UserService,
	linkService *LinkService,
	achievementService *AchievementService,
	analyticsService *AnalyticsService,
) *Service {
	return &Service{
		UserService:        userService,
		LinkService:        linkService,
		AchievementService: achievementService,
		AnalyticsService:   analyticsService,
	}
}

type UserServiceI interface {
	Register(ctx context.Context, email, password, username string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	GetDirectory(ctx context.Context, query model.DirectoryQuery) (*model.DirectoryPage, error)
	GetPublicProfile(ctx context.Context, username string) (*model.User, []*model.Link, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	IncrementProfileViews(ctx context.Context, userID uuid.UUID) error
	ListPublicProfiles(ctx context.Context, search, orderBy string, limit, offset uint64) ([]*model.PublicProfile, error)
	CountPublicProfiles(ctx context.Context, search string) (int, error)
	GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error)
}

type LinkServiceI interface {
	GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error)
	AddLink(ctx context.Context, userID uuid.UUID, update model.LinkUpdate) (*model.Link, error)
	UpdateLink(ctx context.Context, userID, linkID uuid.UUID, update model.LinkUpdate) (*model.Link, error)
	DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error
	ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) ([]*model.Link, error)
	TrackClick(ctx context.Context, username string, linkID uuid.UUID) error
}

type LinkRepository interface {
	GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error)
	GetLinkByID(ctx context.Context, userID, linkID uuid.UUID) (*model.Link, error)
	AddLink(ctx context.Context, link *model.Link) error
	UpdateLink(ctx context.Context, userID, linkID uuid.UUID, update model.LinkUpdate) (*model.Link, error)
	DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error
	ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) ([]*model.Link, error)
	TrackClick(ctx context.Context, username string, linkID uuid.UUID) error
}

type AchievementServiceI interface {
	GetAchievements(ctx context.Context, userID uuid.UUID) (*model.AchievementOverview, error)
	CheckAndAward(ctx context.Context, userID uuid.UUID) ([]model.AchievementDefinition, int, error)
	UpdateStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

type AchievementRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error)
	GetEarnedAchievements(ctx context.Context, userID uuid.UUID) ([]model.EarnedAchievement, error)
	AppendAchievements(ctx context.Context, userID uuid.UUID, earned []model.EarnedAchievement, points map[string]int) ([]string, int, error)
	UpdateStreak(ctx context.Context, userID uuid.UUID, streakDays int, lastActiveDate time.Time) error
}

type AnalyticsServiceI interface {
	GetPlatformStats(ctx context.Context) (*model.PlatformStats, error)
	GetUserStats(ctx context.Context, userID uuid.UUID) (*model.UserAnalytics, error)
	GetLinkPerformance(ctx context.Context, userID, linkID uuid.UUID) (*model.LinkPerformance, error)
}

type AnalyticsRepository interface {
	GetPlatformStats(ctx context.Context) (*model.PlatformStats, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error)
	GetLinkByID(ctx context.Context, userID, linkID uuid.UUID) (*model.Link, error)
}
