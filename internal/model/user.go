package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      string
	Username          string
	DisplayName       string
	Bio               string
	ProfileImage      string
	Theme             string
	IsPublic          bool
	Analytics         Analytics
	AchievementPoints int
	StreakDays        int
	LastActiveDate    *time.Time
	Subscription      Subscription
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Analytics holds the lifetime and rolling counters embedded in the user
// record. Total counters are monotonically non-decreasing.
type Analytics struct {
	TotalViews    int
	TotalClicks   int
	MonthlyViews  int
	MonthlyClicks int
}

type Subscription struct {
	Type      string     `json:"type"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ProfileUpdate struct {
	Username     string
	DisplayName  string
	Bio          string
	ProfileImage string
	Theme        string
	IsPublic     bool
}

type PublicProfile struct {
	Username     string
	DisplayName  string
	Bio          string
	ProfileImage string
	TotalViews   int
	TotalClicks  int
	LinkCount    int
	CreatedAt    time.Time
}

type DirectoryQuery struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

type DirectoryPage struct {
	Profiles   []*PublicProfile
	Pagination Pagination
}

type Pagination struct {
	CurrentPage   int
	TotalPages    int
	TotalProfiles int
	HasNextPage   bool
	HasPrevPage   bool
}
