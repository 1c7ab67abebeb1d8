package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"perma/internal/model"
	"perma/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultBackgroundColor = "#3B82F6"
	defaultTextColor       = "#FFFFFF"
)

type LinkService struct {
	repo LinkRepository
}

func NewLinkService(repo LinkRepository) *LinkService {
	return &LinkService{
		repo: repo,
	}
}

func (s *LinkService) GetLinks(ctx context.Context, userID uuid.UUID) ([]*model.Link, error) {
	links, err := s.repo.GetLinks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	return links, nil
}

func (s *LinkService) AddLink(ctx context.Context, userID uuid.UUID, update model.LinkUpdate) (*model.Link, error) {
	now := time.Now().UTC()

	backgroundColor := update.BackgroundColor
	if backgroundColor == "" {
		backgroundColor = defaultBackgroundColor
	}
	textColor := update.TextColor
	if textColor == "" {
		textColor = defaultTextColor
	}

	link := &model.Link{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           strings.TrimSpace(update.Title),
		URL:             strings.TrimSpace(update.URL),
		Description:     strings.TrimSpace(update.Description),
		IsActive:        true,
		BackgroundColor: backgroundColor,
		TextColor:       textColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.AddLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to add link: %w", err)
	}

	return link, nil
}

func (s *LinkService) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, update model.LinkUpdate) (*model.Link, error) {
	link, err := s.repo.UpdateLink(ctx, userID, linkID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return link, nil
}

func (s *LinkService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	err := s.repo.DeleteLink(ctx, userID, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

func (s *LinkService) ReorderLinks(ctx context.Context, userID uuid.UUID, linkIDs []uuid.UUID) ([]*model.Link, error) {
	links, err := s.repo.ReorderLinks(ctx, userID, linkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to reorder links: %w", err)
	}
	return links, nil
}

func (s *LinkService) TrackClick(ctx context.Context, username string, linkID uuid.UUID) error {
	username = strings.ToLower(strings.TrimSpace(username))

	err := s.repo.TrackClick(ctx, username, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to track click: %w", err)
	}
	return nil
}
