package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"perma/internal/model"
	"perma/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	defaultTheme          = "dark"
	defaultDirectoryLimit = 20
	maxDirectoryLimit     = 100
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) Register(ctx context.Context, email, password, username string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		DisplayName:  username,
		Theme:        defaultTheme,
		IsPublic:     true,
		Subscription: model.Subscription{Type: "free"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// the availability checks above race with concurrent signups; the unique
	// constraints are the source of truth
	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (*model.User, error) {
	update.Username = strings.ToLower(strings.TrimSpace(update.Username))

	current, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if update.Username != current.Username {
		if _, err := s.repo.GetUserByUsername(ctx, update.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	user, err := s.repo.UpdateUserProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *UserService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	_, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return false, nil
}

func directoryOrder(sortKey string) string {
	switch sortKey {
	case "popular":
		return "total_views DESC"
	case "most_clicks":
		return "total_clicks DESC"
	default:
		return "created_at DESC"
	}
}

func (s *UserService) GetDirectory(ctx context.Context, query model.DirectoryQuery) (*model.DirectoryPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = defaultDirectoryLimit
	}
	if query.Limit > maxDirectoryLimit {
		query.Limit = maxDirectoryLimit
	}

	offset := (query.Page - 1) * query.Limit

	profiles, err := s.repo.ListPublicProfiles(ctx, query.Search, directoryOrder(query.Sort),
		uint64(query.Limit), uint64(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list public profiles: %w", err)
	}

	total, err := s.repo.CountPublicProfiles(ctx, query.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to count public profiles: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))

	return &model.DirectoryPage{
		Profiles: profiles,
		Pagination: model.Pagination{
			CurrentPage:   query.Page,
			TotalPages:    totalPages,
			TotalProfiles: total,
			HasNextPage:   offset+len(profiles) < total,
			HasPrevPage:   query.Page > 1,
		},
	}, nil
}

// GetPublicProfile returns a public user together with their links and
// counts the view.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*model.User, []*model.Link, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !user.IsPublic {
		return nil, nil, ErrUserNotFound
	}

	links, err := s.repo.GetLinks(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get links: %w", err)
	}

	if err := s.repo.IncrementProfileViews(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to increment profile views: %w", err)
	}

	return user, links, nil
}
