package service

import (
	"context"
	"testing"

	"perma/internal/model"
	"perma/internal/repository"
	"perma/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserServiceRegister(t *testing.T) {
	testCases := []struct {
		name      string
		email     string
		username  string
		mockSetup func(repo *mocks.MockUserRepository)
		wantErr   error
	}{
		{
			name:     "success normalizes email and username",
			email:    "  New.User@Example.COM ",
			username: " NewUser ",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "new.user@example.com").
					Return(nil, repository.ErrNotFound)
				repo.On("GetUserByUsername", mock.Anything, "newuser").
					Return(nil, repository.ErrNotFound)
				repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(nil)
			},
		},
		{
			name:     "email already taken",
			email:    "taken@example.com",
			username: "fresh",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{ID: uuid.New()}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:     "username already taken",
			email:    "fresh@example.com",
			username: "taken",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "fresh@example.com").
					Return(nil, repository.ErrNotFound)
				repo.On("GetUserByUsername", mock.Anything, "taken").
					Return(&model.User{ID: uuid.New()}, nil)
			},
			wantErr: ErrUsernameTaken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockUserRepository)
			tc.mockSetup(repo)
			svc := NewUserService(repo)

			user, err := svc.Register(context.Background(), tc.email, "secret-password", tc.username)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new.user@example.com", user.Email)
				assert.Equal(t, "newuser", user.Username)
				assert.Equal(t, "newuser", user.DisplayName)
				assert.True(t, user.IsPublic)
				assert.Equal(t, "free", user.Subscription.Type)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(user.PasswordHash), []byte("secret-password")))
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
	}

	testCases := []struct {
		name      string
		email     string
		password  string
		mockSetup func(repo *mocks.MockUserRepository)
		wantErr   error
	}{
		{
			name:     "success",
			email:    "User@Example.com",
			password: "correct-password",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "wrong-password",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email maps to the same error",
			email:    "nobody@example.com",
			password: "correct-password",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockUserRepository)
			tc.mockSetup(repo)
			svc := NewUserService(repo)

			user, err := svc.Authenticate(context.Background(), tc.email, tc.password)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored.ID, user.ID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUserServiceIsUsernameAvailable(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	repo.On("GetUserByUsername", mock.Anything, "free").Return(nil, repository.ErrNotFound)
	repo.On("GetUserByUsername", mock.Anything, "occupied").Return(&model.User{ID: uuid.New()}, nil)

	svc := NewUserService(repo)

	available, err := svc.IsUsernameAvailable(context.Background(), " Free ")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.IsUsernameAvailable(context.Background(), "occupied")
	require.NoError(t, err)
	assert.False(t, available)

	repo.AssertExpectations(t)
}

func TestUserServiceGetDirectory(t *testing.T) {
	profiles := []*model.PublicProfile{
		{Username: "alpha"},
		{Username: "beta"},
	}

	testCases := []struct {
		name           string
		query          model.DirectoryQuery
		wantOrderBy    string
		wantLimit      uint64
		wantOffset     uint64
		total          int
		wantPagination model.Pagination
	}{
		{
			name:        "defaults applied",
			query:       model.DirectoryQuery{},
			wantOrderBy: "created_at DESC",
			wantLimit:   20,
			wantOffset:  0,
			total:       42,
			wantPagination: model.Pagination{
				CurrentPage:   1,
				TotalPages:    3,
				TotalProfiles: 42,
				HasNextPage:   true,
				HasPrevPage:   false,
			},
		},
		{
			name:        "popular sort with explicit page",
			query:       model.DirectoryQuery{Sort: "popular", Page: 3, Limit: 10},
			wantOrderBy: "total_views DESC",
			wantLimit:   10,
			wantOffset:  20,
			total:       22,
			wantPagination: model.Pagination{
				CurrentPage:   3,
				TotalPages:    3,
				TotalProfiles: 22,
				HasNextPage:   false,
				HasPrevPage:   true,
			},
		},
		{
			name:        "limit capped",
			query:       model.DirectoryQuery{Sort: "most_clicks", Limit: 500},
			wantOrderBy: "total_clicks DESC",
			wantLimit:   100,
			wantOffset:  0,
			total:       2,
			wantPagination: model.Pagination{
				CurrentPage:   1,
				TotalPages:    1,
				TotalProfiles: 2,
				HasNextPage:   false,
				HasPrevPage:   false,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockUserRepository)
			repo.On("ListPublicProfiles", mock.Anything, tc.query.Search, tc.wantOrderBy,
				tc.wantLimit, tc.wantOffset).Return(profiles, nil)
			repo.On("CountPublicProfiles", mock.Anything, tc.query.Search).Return(tc.total, nil)

			svc := NewUserService(repo)
			page, err := svc.GetDirectory(context.Background(), tc.query)

			require.NoError(t, err)
			assert.Equal(t, profiles, page.Profiles)
			assert.Equal(t, tc.wantPagination, page.Pagination)

			repo.AssertExpectations(t)
		})
	}
}

func TestUserServiceGetPublicProfile(t *testing.T) {
	userID := uuid.New()
	links := []*model.Link{{ID: uuid.New(), UserID: userID}}

	t.Run("public profile counts the view", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetUserByUsername", mock.Anything, "visible").
			Return(&model.User{ID: userID, Username: "visible", IsPublic: true}, nil)
		repo.On("GetLinks", mock.Anything, userID).Return(links, nil)
		repo.On("IncrementProfileViews", mock.Anything, userID).Return(nil)

		svc := NewUserService(repo)
		user, gotLinks, err := svc.GetPublicProfile(context.Background(), "Visible")

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, links, gotLinks)
		repo.AssertExpectations(t)
	})

	t.Run("private profile looks like a missing one", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetUserByUsername", mock.Anything, "hidden").
			Return(&model.User{ID: userID, Username: "hidden", IsPublic: false}, nil)

		svc := NewUserService(repo)
		_, _, err := svc.GetPublicProfile(context.Background(), "hidden")

		assert.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertNotCalled(t, "IncrementProfileViews", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		repo.On("GetUserByUsername", mock.Anything, "missing").
			Return(nil, repository.ErrNotFound)

		svc := NewUserService(repo)
		_, _, err := svc.GetPublicProfile(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertExpectations(t)
	})
}
