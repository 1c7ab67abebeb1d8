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
	"github.com/google/uuid"
)

type analyticsRoutes struct {
	as service.AnalyticsServiceI
	a  *auth.JWTAuth
}

func NewAnalyticsRoutes(handler *gin.RouterGroup, as service.AnalyticsServiceI, a *auth.JWTAuth) {
	r := &analyticsRoutes{as: as, a: a}
	h := handler.Group("/analytics")
	{
		h.GET("/platform-stats", r.GetPlatformStats)

		p := h.Group("")
		p.Use(a.Middleware())
		{
			p.GET("/user-stats", r.GetUserStats)
			p.GET("/link-performance/:link_id", r.GetLinkPerformance)
		}
	}
}

func (r *analyticsRoutes) GetPlatformStats(c *gin.Context) {
	log := logger.Logger()

	stats, err := r.as.GetPlatformStats(c.Request.Context())
	if err != nil {
		log.Error("failed to get platform stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch platform statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":  stats.TotalUsers,
			"total_views":  stats.TotalViews,
			"total_clicks": stats.TotalClicks,
		},
	})
}

type LinkPerformanceResponse struct {
	LinkID      string    `json:"link_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	TotalClicks int       `json:"total_clicks"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newLinkPerformanceResponse(p model.LinkPerformance) LinkPerformanceResponse {
	return LinkPerformanceResponse{
		LinkID:      p.LinkID.String(),
		Title:       p.Title,
		URL:         p.URL,
		TotalClicks: p.TotalClicks,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type UserAnalyticsResponse struct {
	TotalViews       int                       `json:"total_views"`
	TotalClicks      int                       `json:"total_clicks"`
	TotalLinks       int                       `json:"total_links"`
	ActiveLinks      int                       `json:"active_links"`
	ClickThroughRate int                       `json:"click_through_rate"`
	MonthlyViews     int                       `json:"monthly_views"`
	MonthlyClicks    int                       `json:"monthly_clicks"`
	TopLinks         []LinkPerformanceResponse `json:"top_links"`
}

func (r *analyticsRoutes) GetUserStats(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	analytics, err := r.as.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get user stats", zap.Error(err))
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user statistics"})
		return
	}

	topLinks := make([]LinkPerformanceResponse, len(analytics.TopLinks))
	for i, link := range analytics.TopLinks {
		topLinks[i] = newLinkPerformanceResponse(link)
	}

	c.JSON(http.StatusOK, gin.H{
		"analytics": UserAnalyticsResponse{
			TotalViews:       analytics.TotalViews,
			TotalClicks:      analytics.TotalClicks,
			TotalLinks:       analytics.TotalLinks,
			ActiveLinks:      analytics.ActiveLinks,
			ClickThroughRate: analytics.ClickThroughRate,
			MonthlyViews:     analytics.MonthlyViews,
			MonthlyClicks:    analytics.MonthlyClicks,
			TopLinks:         topLinks,
		},
	})
}

func (r *analyticsRoutes) GetLinkPerformance(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	linkID, err := uuid.Parse(c.Param("link_id"))
	if err != nil {
		log.Error("failed to parse link_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link_id"})
		return
	}

	performance, err := r.as.GetLinkPerformance(c.Request.Context(), userID, linkID)
	if err != nil {
		log.Error("failed to get link performance", zap.Error(err))
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch link performance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"performance": newLinkPerformanceResponse(*performance)})
}
