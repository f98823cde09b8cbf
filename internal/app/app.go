package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	maltlogHTTP "maltlog/internal/controller/http"
	"maltlog/internal/repo/persistent"
	"maltlog/internal/usecase"
	"maltlog/pkg/config"
	"maltlog/pkg/jwt"
	"maltlog/pkg/logger"
	"maltlog/pkg/middleware"
	"maltlog/pkg/queue"
	"maltlog/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "maltlog/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	whiskyRepo := persistent.NewWhiskyRepository(db)
	reviewRepo := persistent.NewReviewRepository(db)
	postRepo := persistent.NewPostRepository(db)
	likeRepo := persistent.NewLikeRepository(db)

	// Initialize use cases
	likeUseCase := usecase.NewLikeUseCase(likeRepo, whiskyRepo, postRepo, redisClient, queueClient, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, s3Client, log)
	whiskyUseCase := usecase.NewWhiskyUseCase(whiskyRepo, likeUseCase, cfg.StorageBaseURL, log)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, whiskyRepo, s3Client, log)
	profileUseCase := usecase.NewProfileUseCase(userRepo, reviewRepo, postRepo, cfg.StorageBaseURL, log)
	communityUseCase := usecase.NewCommunityUseCase(postRepo, userRepo, likeUseCase, s3Client, queueClient, cfg.StorageBaseURL, log)

	// Initialize HTTP handlers
	authHandler := maltlogHTTP.NewAuthHandler(authUseCase, likeUseCase, log)
	whiskyHandler := maltlogHTTP.NewWhiskyHandler(whiskyUseCase, likeUseCase, log)
	reviewHandler := maltlogHTTP.NewReviewHandler(reviewUseCase, log)
	profileHandler := maltlogHTTP.NewProfileHandler(profileUseCase, log)
	communityHandler := maltlogHTTP.NewCommunityHandler(communityUseCase, likeUseCase, log)
	ageGateHandler := maltlogHTTP.NewAgeGateHandler()

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute)) // 100 requests per minute

	// Public routes; optional auth personalizes liked flags when a token is sent
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/login", authHandler.Login)

		public.GET("/whiskies", whiskyHandler.List)
		public.GET("/whiskies/featured", whiskyHandler.Featured)
		public.GET("/whiskies/:id", whiskyHandler.Get)
		public.GET("/whiskies/:id/likes", whiskyHandler.LikeCount)

		public.GET("/profile/summary", profileHandler.Summary)
		public.GET("/profile/reviews", profileHandler.Reviews)
		public.GET("/profile/first-reviewed", profileHandler.FirstReviewed)

		public.GET("/community/latest", communityHandler.Latest)
		public.GET("/community/posts", communityHandler.ListPosts)
		public.GET("/community/posts/:post_id", communityHandler.GetPost)
		public.GET("/community/posts/:post_id/likes", communityHandler.LikeCount)
		public.GET("/community/posts/:post_id/comments", communityHandler.Comments)

		public.POST("/age-gate", ageGateHandler.Confirm)
		public.GET("/age-gate", ageGateHandler.Status)
	}

	// Routes that require a signed-in user
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(jwtService))
	{
		private.GET("/auth/me", authHandler.Me)
		private.POST("/auth/logout", authHandler.Logout)
		private.POST("/auth/avatar", authHandler.UploadAvatar)

		private.POST("/whiskies/:id/like", whiskyHandler.ToggleLike)
		private.GET("/whiskies/liked", whiskyHandler.Liked)

		private.POST("/reviews", reviewHandler.Create)

		private.POST("/community/posts", communityHandler.CreatePost)
		private.POST("/community/posts/:post_id/like", communityHandler.ToggleLike)
		private.POST("/community/posts/:post_id/comments", communityHandler.AddComment)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Maltlog starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down maltlog...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Maltlog exited")
}
