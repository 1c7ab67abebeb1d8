package model

import (
	"time"

	"github.com/google/uuid"
)

type Link struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Title           string
	URL             string
	Description     string
	IsActive        bool
	Clicks          int
	Position        int
	BackgroundColor string
	TextColor       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type LinkUpdate struct {
	Title           string
	URL             string
	Description     string
	IsActive        bool
	BackgroundColor string
	TextColor       string
}
