package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"perma/internal/model"
	"perma/internal/service"
	"perma/pkg/auth"
	"perma/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	us service.UserServiceI
	a  *auth.JWTAuth
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.JWTAuth) {
	r := &userRoutes{us: us, a: a}
	h := handler.Group("/users")
	{
		h.GET("/check-username", r.CheckUsername)
		h.GET("/directory", r.GetDirectory)
		h.GET("/public/:username", r.GetPublicProfile)

		p := h.Group("/profile")
		p.Use(a.Middleware())
		{
			p.GET("", r.GetProfile)
			p.PUT("", r.UpdateProfile)
			p.PUT("/password", r.ChangePassword)
		}
	}
}

type UserResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Username          string     `json:"username"`
	DisplayName       string     `json:"display_name"`
	Bio               string     `json:"bio"`
	ProfileImage      string     `json:"profile_image"`
	Theme             string     `json:"theme"`
	IsPublic          bool       `json:"is_public"`
	TotalViews        int        `json:"total_views"`
	TotalClicks       int        `json:"total_clicks"`
	AchievementPoints int        `json:"achievement_points"`
	StreakDays        int        `json:"streak_days"`
	LastActiveDate    *time.Time `json:"last_active_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func newUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		Bio:               user.Bio,
		ProfileImage:      user.ProfileImage,
		Theme:             user.Theme,
		IsPublic:          user.IsPublic,
		TotalViews:        user.Analytics.TotalViews,
		TotalClicks:       user.Analytics.TotalClicks,
		AchievementPoints: user.AchievementPoints,
		StreakDays:        user.StreakDays,
		LastActiveDate:    user.LastActiveDate,
		CreatedAt:         user.CreatedAt,
	}
}

func (r *userRoutes) CheckUsername(c *gin.Context) {
	log := logger.Logger()

	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	available, err := r.us.IsUsernameAvailable(c.Request.Context(), username)
	if err != nil {
		log.Error("failed to check username", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check username availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (r *userRoutes) GetProfile(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user, err := r.us.GetProfile(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get user profile", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

type UpdateProfileRequest struct {
	Username     string `json:"username" binding:"required,min=3"`
	DisplayName  string `json:"display_name" binding:"required"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
	Theme        string `json:"theme"`
	IsPublic     bool   `json:"is_public"`
}

func (r *userRoutes) UpdateProfile(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := r.us.UpdateProfile(c.Request.Context(), userID, model.ProfileUpdate{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		Theme:        req.Theme,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		log.Error("failed to update user profile", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (r *userRoutes) ChangePassword(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "current password and new password are required"})
		return
	}

	err := r.us.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		log.Error("failed to change password", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "current password is incorrect"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

type DirectoryProfileResponse struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	TotalViews   int       `json:"total_views"`
	TotalClicks  int       `json:"total_clicks"`
	LinkCount    int       `json:"link_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type DirectoryResponse struct {
	Profiles   []DirectoryProfileResponse `json:"profiles"`
	Pagination PaginationResponse         `json:"pagination"`
}

type PaginationResponse struct {
	CurrentPage   int  `json:"current_page"`
	TotalPages    int  `json:"total_pages"`
	TotalProfiles int  `json:"total_profiles"`
	HasNextPage   bool `json:"has_next_page"`
	HasPrevPage   bool `json:"has_prev_page"`
}

func (r *userRoutes) GetDirectory(c *gin.Context) {
	log := logger.Logger()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	directory, err := r.us.GetDirectory(c.Request.Context(), model.DirectoryQuery{
		Search: c.Query("search"),
		Sort:   c.DefaultQuery("sort", "recent"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.Error("failed to get directory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch directory"})
		return
	}

	profiles := make([]DirectoryProfileResponse, len(directory.Profiles))
	for i, p := range directory.Profiles {
		profiles[i] = DirectoryProfileResponse{
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			Bio:          p.Bio,
			ProfileImage: p.ProfileImage,
			TotalViews:   p.TotalViews,
			TotalClicks:  p.TotalClicks,
			LinkCount:    p.LinkCount,
			CreatedAt:    p.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, DirectoryResponse{
		Profiles: profiles,
		Pagination: PaginationResponse{
			CurrentPage:   directory.Pagination.CurrentPage,
			TotalPages:    directory.Pagination.TotalPages,
			TotalProfiles: directory.Pagination.TotalProfiles,
			HasNextPage:   directory.Pagination.HasNextPage,
			HasPrevPage:   directory.Pagination.HasPrevPage,
		},
	})
}

type PublicProfileResponse struct {
	Username     string         `json:"username"`
	DisplayName  string         `json:"display_name"`
	Bio          string         `json:"bio"`
	ProfileImage string         `json:"profile_image"`
	Theme        string         `json:"theme"`
	Links        []LinkResponse `json:"links"`
}

func (r *userRoutes) GetPublicProfile(c *gin.Context) {
	log := logger.Logger()

	username := c.Param("username")

	user, links, err := r.us.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		log.Error("failed to get public profile", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user profile"})
		return
	}

	out := PublicProfileResponse{
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		Theme:        user.Theme,
		Links:        make([]LinkResponse, 0, len(links)),
	}
	for _, link := range links {
		if !link.IsActive {
			continue
		}
		out.Links = append(out.Links, newLinkResponse(link))
	}

	c.JSON(http.StatusOK, gin.H{"user": out})
}
