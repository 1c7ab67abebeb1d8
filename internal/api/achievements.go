package api

import (
	"errors"
	"net/http"
	"time"

	"perma/internal/model"
	"perma/internal/service"
	"perma/pkg/auth"
	"perma/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type achievementRoutes struct {
	as service.AchievementServiceI
	a  *auth.JWTAuth
}

func NewAchievementRoutes(handler *gin.RouterGroup, as service.AchievementServiceI, a *auth.JWTAuth) {
	r := &achievementRoutes{as: as, a: a}
	h := handler.Group("/achievements")
	h.Use(a.Middleware())
	{
		h.GET("", r.GetAchievements)
		h.POST("/check", r.CheckAchievements)
		h.POST("/update-streak", r.UpdateStreak)
	}
}

type AchievementResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Points      int        `json:"points"`
	Rarity      string     `json:"rarity"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
	Progress    float64    `json:"progress"`
}

type AchievementStatsResponse struct {
	TotalPoints       int `json:"total_points"`
	EarnedCount       int `json:"earned_count"`
	TotalAchievements int `json:"total_achievements"`
	CompletionRate    int `json:"completion_rate"`
}

type AchievementListResponse struct {
	Achievements []AchievementResponse    `json:"achievements"`
	Stats        AchievementStatsResponse `json:"stats"`
}

func (r *achievementRoutes) GetAchievements(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	overview, err := r.as.GetAchievements(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get achievements", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch achievements"})
		return
	}

	achievements := make([]AchievementResponse, len(overview.Achievements))
	for i, status := range overview.Achievements {
		achievements[i] = AchievementResponse{
			ID:          status.ID,
			Title:       status.Title,
			Description: status.Description,
			Category:    string(status.Category),
			Points:      status.Points,
			Rarity:      string(status.Rarity),
			Earned:      status.Earned,
			EarnedAt:    status.EarnedAt,
			Progress:    status.Progress,
		}
	}

	c.JSON(http.StatusOK, AchievementListResponse{
		Achievements: achievements,
		Stats: AchievementStatsResponse{
			TotalPoints:       overview.Summary.TotalPoints,
			EarnedCount:       overview.Summary.EarnedCount,
			TotalAchievements: overview.Summary.TotalAchievements,
			CompletionRate:    overview.Summary.CompletionRate,
		},
	})
}

type NewAchievementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Points      int    `json:"points"`
	Rarity      string `json:"rarity"`
}

type CheckAchievementsResponse struct {
	NewAchievements []NewAchievementResponse `json:"new_achievements"`
	PointsEarned    int                      `json:"points_earned"`
}

func (r *achievementRoutes) CheckAchievements(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	newlyEarned, pointsEarned, err := r.as.CheckAndAward(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to check achievements", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check achievements"})
		return
	}

	out := make([]NewAchievementResponse, len(newlyEarned))
	for i, def := range newlyEarned {
		out[i] = newAchievementDefinitionResponse(def)
	}

	c.JSON(http.StatusOK, CheckAchievementsResponse{
		NewAchievements: out,
		PointsEarned:    pointsEarned,
	})
}

func newAchievementDefinitionResponse(def model.AchievementDefinition) NewAchievementResponse {
	return NewAchievementResponse{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Category:    string(def.Category),
		Points:      def.Points,
		Rarity:      string(def.Rarity),
	}
}

func (r *achievementRoutes) UpdateStreak(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	streakDays, err := r.as.UpdateStreak(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to update streak", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update streak"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak_days": streakDays})
}
