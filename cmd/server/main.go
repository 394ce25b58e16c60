package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/cache"
	"heartlink/backend/internal/config"
	"heartlink/backend/internal/database"
	"heartlink/backend/internal/handler"
	"heartlink/backend/internal/media"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           HeartLink API
// @version         1.0
// @description     This is the API for the HeartLink dating service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()

	// Connect to the database; the handle is passed to every store.
	db := database.Connect(cfg.DatabaseURL)

	users := store.NewUserStore(db)
	matches := store.NewMatchStore(db)
	messages := store.NewMessageStore(db, matches)

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unavailable, match counts served from the database: %v", err)
		redisCache = nil
	}

	var mediaService *media.Service
	if cfg.S3Bucket != "" {
		var err error
		mediaService, err = media.NewService(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to init media service: %v", err)
		}
	} else {
		log.Println("Warning: S3_BUCKET_NAME not set, image uploads disabled")
	}

	authHandler := handler.NewAuthHandler(users, cfg)
	userHandler := handler.NewUserHandler(users, mediaService)
	matchHandler := handler.NewMatchHandler(matches, redisCache)
	chatHandler := handler.NewChatHandler(messages, matches)

	if cfg.Env == "development" {
		if err := database.SeedDemoData(db, cfg); err != nil {
			log.Printf("Warning: failed to seed demo data: %v", err)
		}
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", auth.AuthMiddleware(cfg), authHandler.Profile)
		}

		// User routes
		userRoutes := apiV1.Group("/users")
		{
			// Profiles are viewable without a login.
			userRoutes.GET("/:username", auth.OptionalAuthMiddleware(cfg), userHandler.GetProfile)

			me := userRoutes.Group("/me")
			me.Use(auth.AuthMiddleware(cfg))
			{
				me.GET("/candidates", userHandler.GetCandidates)
				me.PUT("/photo", userHandler.SetPhoto)
				me.DELETE("/photo", userHandler.ClearPhoto)
			}
		}

		// Match routes (protected)
		matchRoutes := apiV1.Group("/matches")
		matchRoutes.Use(auth.AuthMiddleware(cfg))
		{
			matchRoutes.POST("", matchHandler.CreateMatch)
			matchRoutes.GET("", matchHandler.ListMatches)
			matchRoutes.GET("/count", matchHandler.MatchCount)
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chat")
		chatRoutes.Use(auth.AuthMiddleware(cfg))
		{
			chatRoutes.GET("/conversation/:username", chatHandler.GetConversation)
			chatRoutes.POST("/messages", chatHandler.SendMessage)
			chatRoutes.DELETE("/messages/:id", chatHandler.DeleteMessage)
		}

		// Media routes (protected, only when S3 is configured)
		if mediaService != nil {
			mediaHandler := handler.NewMediaHandler(mediaService)
			mediaRoutes := apiV1.Group("/media")
			mediaRoutes.Use(auth.AuthMiddleware(cfg))
			{
				mediaRoutes.POST("/upload-url", mediaHandler.UploadURL)
			}
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(cfg), auth.AdminMiddleware(users))
		{
			adminRoutes.GET("/messages", chatHandler.AuditMessages)
		}
	}

	addr := ":" + cfg.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost:" + cfg.Port + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
