package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"perma/internal/api"
	"perma/internal/repository"
	"perma/internal/service"
	"perma/pkg/auth"
	"perma/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	launchDate, err := cfg.LaunchDate()
	if err != nil {
		zapLogger.Fatal("Failed to parse launch date", zap.Error(err))
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	catalog := service.NewAchievementCatalog()

	userService := service.NewUserService(repo)
	linkService := service.NewLinkService(repo)
	achievementService := service.NewAchievementService(repo, catalog, launchDate)
	analyticsService := service.NewAnalyticsService(repo)

	jwtAuth := auth.NewJWTAuth(cfg.Auth.JWTSecret, cfg.TokenTTL())

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewAuthRoutes(a, userService, jwtAuth)
	api.NewUserRoutes(a, userService, jwtAuth)
	api.NewLinkRoutes(a, linkService, jwtAuth)
	api.NewAchievementRoutes(a, achievementService, jwtAuth)
	api.NewAnalyticsRoutes(a, analyticsService, jwtAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
