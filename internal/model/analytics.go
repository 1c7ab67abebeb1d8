package model

import (
	"time"

	"github.com/google/uuid"
)

type PlatformStats struct {
	TotalUsers  int
	TotalViews  int
	TotalClicks int
}

type UserAnalytics struct {
	TotalViews       int
	TotalClicks      int
	TotalLinks       int
	ActiveLinks      int
	ClickThroughRate int
	MonthlyViews     int
	MonthlyClicks    int
	TopLinks         []LinkPerformance
}

type LinkPerformance struct {
	LinkID      uuid.UUID
	Title       string
	URL         string
	TotalClicks int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
