package server

import (
	"log"
	"strings"
	"time"

	"github.com/devporto/backend/internal/config"
	"github.com/devporto/backend/internal/handler"
	"github.com/devporto/backend/internal/middleware"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/internal/service"
	"github.com/devporto/backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	mediaStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	notificationSvc := service.NewNotificationService(notificationRepo)

	authSvc := service.NewAuthService(userRepo, searchSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	profileSvc := service.NewProfileService(userRepo, mediaStorage)
	profileHandler := handler.NewProfileHandler(profileSvc)

	projectSvc := service.NewProjectService(projectRepo, ratingRepo, likeRepo, userRepo, searchSvc, redisClient)
	projectHandler := handler.NewProjectHandler(projectSvc)

	commentSvc := service.NewCommentService(commentRepo, projectRepo, userRepo, likeRepo, notificationSvc, redisClient)
	commentHandler := handler.NewCommentHandler(commentSvc)

	followSvc := service.NewFollowService(followRepo, userRepo, notificationSvc)
	followHandler := handler.NewFollowHandler(followSvc)

	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	statSvc := service.NewStatService(userRepo, projectRepo)
	statHandler := handler.NewStatHandler(statSvc)

	adminSvc := service.NewAdminService(userRepo)
	adminHandler := handler.NewAdminHandler(adminSvc)

	uploadHandler := handler.NewUploadHandler(mediaStorage)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public reads; a valid token upgrades visibility and like status.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/projects", projectHandler.GetProjects)
		public.GET("/projects/trending", statHandler.GetTrendingProjects)
		public.GET("/projects/:id", projectHandler.GetProject)
		public.GET("/comments/project/:id", commentHandler.GetProjectComments)
		public.GET("/profile/:username", profileHandler.GetProfileByUsername)
		public.GET("/follow/followers/:userId", followHandler.GetFollowers)
		public.GET("/follow/following/:userId", followHandler.GetFollowing)
		public.GET("/stats/platform", statHandler.GetPlatformStats)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.DELETE("/users/:userId", adminHandler.DeleteUser)
		}

		// Project routes
		protected.POST("/projects", projectHandler.CreateProject)
		protected.PUT("/projects/:id", projectHandler.UpdateProject)
		protected.DELETE("/projects/:id", projectHandler.DeleteProject)
		protected.POST("/projects/:id/rate", projectHandler.RateProject)
		protected.POST("/projects/:id/like", projectHandler.ToggleLike)
		protected.DELETE("/projects/:id/like", projectHandler.ToggleLike)
		protected.GET("/projects/:id/like/status", projectHandler.GetLikeStatus)

		// Comment routes
		protected.POST("/comments", commentHandler.CreateComment)
		protected.PUT("/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)
		protected.POST("/comments/:id/like", commentHandler.ToggleLike)

		// Follow routes
		protected.POST("/follow/:userId", followHandler.Follow)
		protected.DELETE("/follow/:userId", followHandler.Unfollow)
		protected.GET("/follow/check/:userId", followHandler.CheckFollowStatus)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", notificationHandler.DeleteNotification)
		protected.DELETE("/notifications/clear", notificationHandler.ClearAll)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetOwnProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.PUT("/profile/avatar", profileHandler.UpdateAvatar)

		protected.POST("/upload", uploadHandler.Upload)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
