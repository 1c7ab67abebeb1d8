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
)

func TestLinkServiceAddLink(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name                string
		update              model.LinkUpdate
		wantTitle           string
		wantBackgroundColor string
		wantTextColor       string
	}{
		{
			name: "trims fields and applies default colors",
			update: model.LinkUpdate{
				Title: "  My Blog  ",
				URL:   " https://example.com ",
			},
			wantTitle:           "My Blog",
			wantBackgroundColor: "#3B82F6",
			wantTextColor:       "#FFFFFF",
		},
		{
			name: "keeps explicit colors",
			update: model.LinkUpdate{
				Title:           "GitHub",
				URL:             "https://github.com/user",
				BackgroundColor: "#000000",
				TextColor:       "#00FF00",
			},
			wantTitle:           "GitHub",
			wantBackgroundColor: "#000000",
			wantTextColor:       "#00FF00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockLinkRepository)
			repo.On("AddLink", mock.Anything, mock.AnythingOfType("*model.Link")).Return(nil)

			svc := NewLinkService(repo)
			link, err := svc.AddLink(context.Background(), userID, tc.update)

			require.NoError(t, err)
			assert.Equal(t, userID, link.UserID)
			assert.Equal(t, tc.wantTitle, link.Title)
			assert.Equal(t, tc.wantBackgroundColor, link.BackgroundColor)
			assert.Equal(t, tc.wantTextColor, link.TextColor)
			assert.True(t, link.IsActive)
			assert.NotEqual(t, uuid.Nil, link.ID)

			repo.AssertExpectations(t)
		})
	}
}

func TestLinkServiceUpdateLink(t *testing.T) {
	userID := uuid.New()
	linkID := uuid.New()

	repo := new(mocks.MockLinkRepository)
	repo.On("UpdateLink", mock.Anything, userID, linkID, mock.Anything).
		Return(nil, repository.ErrNotFound)

	svc := NewLinkService(repo)
	_, err := svc.UpdateLink(context.Background(), userID, linkID, model.LinkUpdate{Title: "x"})

	assert.ErrorIs(t, err, ErrLinkNotFound)
	repo.AssertExpectations(t)
}

func TestLinkServiceDeleteLink(t *testing.T) {
	userID := uuid.New()
	linkID := uuid.New()

	repo := new(mocks.MockLinkRepository)
	repo.On("DeleteLink", mock.Anything, userID, linkID).Return(repository.ErrNotFound)

	svc := NewLinkService(repo)
	err := svc.DeleteLink(context.Background(), userID, linkID)

	assert.ErrorIs(t, err, ErrLinkNotFound)
	repo.AssertExpectations(t)
}

func TestLinkServiceReorderLinks(t *testing.T) {
	userID := uuid.New()
	linkIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	reordered := []*model.Link{
		{ID: linkIDs[0], Position: 0},
		{ID: linkIDs[1], Position: 1},
		{ID: linkIDs[2], Position: 2},
	}

	repo := new(mocks.MockLinkRepository)
	repo.On("ReorderLinks", mock.Anything, userID, linkIDs).Return(reordered, nil)

	svc := NewLinkService(repo)
	links, err := svc.ReorderLinks(context.Background(), userID, linkIDs)

	require.NoError(t, err)
	assert.Equal(t, reordered, links)
	repo.AssertExpectations(t)
}

func TestLinkServiceTrackClick(t *testing.T) {
	linkID := uuid.New()

	t.Run("normalizes username", func(t *testing.T) {
		repo := new(mocks.MockLinkRepository)
		repo.On("TrackClick", mock.Anything, "someone", linkID).Return(nil)

		svc := NewLinkService(repo)
		err := svc.TrackClick(context.Background(), " SomeOne ", linkID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing link", func(t *testing.T) {
		repo := new(mocks.MockLinkRepository)
		repo.On("TrackClick", mock.Anything, "someone", linkID).Return(repository.ErrNotFound)

		svc := NewLinkService(repo)
		err := svc.TrackClick(context.Background(), "someone", linkID)

		assert.ErrorIs(t, err, ErrLinkNotFound)
		repo.AssertExpectations(t)
	})
}
