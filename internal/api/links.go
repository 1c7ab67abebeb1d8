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

type linkRoutes struct {
	ls service.LinkServiceI
	a  *auth.JWTAuth
}

func NewLinkRoutes(handler *gin.RouterGroup, ls service.LinkServiceI, a *auth.JWTAuth) {
	r := &linkRoutes{ls: ls, a: a}
	h := handler.Group("/links")
	{
		h.POST("/:link_id/click", r.TrackClick)

		p := h.Group("")
		p.Use(a.Middleware())
		{
			p.GET("", r.GetLinks)
			p.POST("", r.AddLink)
			p.PUT("", r.ReorderLinks)
			p.PUT("/:link_id", r.UpdateLink)
			p.DELETE("/:link_id", r.DeleteLink)
		}
	}
}

type LinkResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"is_active"`
	Clicks          int       `json:"clicks"`
	Position        int       `json:"position"`
	BackgroundColor string    `json:"background_color"`
	TextColor       string    `json:"text_color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newLinkResponse(link *model.Link) LinkResponse {
	return LinkResponse{
		ID:              link.ID.String(),
		Title:           link.Title,
		URL:             link.URL,
		Description:     link.Description,
		IsActive:        link.IsActive,
		Clicks:          link.Clicks,
		Position:        link.Position,
		BackgroundColor: link.BackgroundColor,
		TextColor:       link.TextColor,
		CreatedAt:       link.CreatedAt,
		UpdatedAt:       link.UpdatedAt,
	}
}

func (r *linkRoutes) GetLinks(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	links, err := r.ls.GetLinks(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to get links", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch links"})
		return
	}

	out := make([]LinkResponse, len(links))
	for i, link := range links {
		out[i] = newLinkResponse(link)
	}

	c.JSON(http.StatusOK, gin.H{"links": out})
}

type AddLinkRequest struct {
	Title           string `json:"title" binding:"required"`
	URL             string `json:"url" binding:"required,url"`
	Description     string `json:"description"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

func (r *linkRoutes) AddLink(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req AddLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and url are required"})
		return
	}

	link, err := r.ls.AddLink(c.Request.Context(), userID, model.LinkUpdate{
		Title:           req.Title,
		URL:             req.URL,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
	})
	if err != nil {
		log.Error("failed to add link", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"link": newLinkResponse(link)})
}

type UpdateLinkRequest struct {
	Title           string `json:"title" binding:"required"`
	URL             string `json:"url" binding:"required,url"`
	Description     string `json:"description"`
	IsActive        bool   `json:"is_active"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
}

func (r *linkRoutes) UpdateLink(c *gin.Context) {
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

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	link, err := r.ls.UpdateLink(c.Request.Context(), userID, linkID, model.LinkUpdate{
		Title:           req.Title,
		URL:             req.URL,
		Description:     req.Description,
		IsActive:        req.IsActive,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
	})
	if err != nil {
		log.Error("failed to update link", zap.Error(err))
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": newLinkResponse(link)})
}

func (r *linkRoutes) DeleteLink(c *gin.Context) {
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

	err = r.ls.DeleteLink(c.Request.Context(), userID, linkID)
	if err != nil {
		log.Error("failed to delete link", zap.Error(err))
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "link deleted successfully"})
}

type ReorderLinksRequest struct {
	LinkIDs []string `json:"link_ids" binding:"required"`
}

func (r *linkRoutes) ReorderLinks(c *gin.Context) {
	log := logger.Logger()

	userID, ok := auth.UserID(c)
	if !ok {
		log.Error("user id not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req ReorderLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "link_ids must be an array"})
		return
	}

	linkIDs := make([]uuid.UUID, 0, len(req.LinkIDs))
	for _, raw := range req.LinkIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id: " + raw})
			return
		}
		linkIDs = append(linkIDs, id)
	}

	links, err := r.ls.ReorderLinks(c.Request.Context(), userID, linkIDs)
	if err != nil {
		log.Error("failed to reorder links", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder links"})
		return
	}

	out := make([]LinkResponse, len(links))
	for i, link := range links {
		out[i] = newLinkResponse(link)
	}

	c.JSON(http.StatusOK, gin.H{"links": out})
}

type TrackClickRequest struct {
	Username string `json:"username" binding:"required"`
}

func (r *linkRoutes) TrackClick(c *gin.Context) {
	log := logger.Logger()

	linkID, err := uuid.Parse(c.Param("link_id"))
	if err != nil {
		log.Error("failed to parse link_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link_id"})
		return
	}

	var req TrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	err = r.ls.TrackClick(c.Request.Context(), req.Username, linkID)
	if err != nil {
		log.Error("failed to track click", zap.Error(err))
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track click"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "click tracked successfully"})
}
