package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/config"
	"heartlink/backend/internal/handler"
	"heartlink/backend/internal/models"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter wires a full API over an isolated in-memory SQLite DB, without
// redis or S3, mirroring the route layout of cmd/server.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Match{}, &models.Message{}))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		PasswordPepper: "pepper",
		BcryptCost:     bcrypt.MinCost,
	}

	users := store.NewUserStore(db)
	matches := store.NewMatchStore(db)
	messages := store.NewMessageStore(db, matches)

	authHandler := handler.NewAuthHandler(users, cfg)
	userHandler := handler.NewUserHandler(users, nil)
	matchHandler := handler.NewMatchHandler(matches, nil)
	chatHandler := handler.NewChatHandler(messages, matches)

	router := gin.New()
	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/profile", auth.AuthMiddleware(cfg), authHandler.Profile)
		}

		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("/:username", auth.OptionalAuthMiddleware(cfg), userHandler.GetProfile)

			me := userRoutes.Group("/me")
			me.Use(auth.AuthMiddleware(cfg))
			{
				me.GET("/candidates", userHandler.GetCandidates)
				me.PUT("/photo", userHandler.SetPhoto)
				me.DELETE("/photo", userHandler.ClearPhoto)
			}
		}

		matchRoutes := apiV1.Group("/matches")
		matchRoutes.Use(auth.AuthMiddleware(cfg))
		{
			matchRoutes.POST("", matchHandler.CreateMatch)
			matchRoutes.GET("", matchHandler.ListMatches)
			matchRoutes.GET("/count", matchHandler.MatchCount)
		}

		chatRoutes := apiV1.Group("/chat")
		chatRoutes.Use(auth.AuthMiddleware(cfg))
		{
			chatRoutes.GET("/conversation/:username", chatHandler.GetConversation)
			chatRoutes.POST("/messages", chatHandler.SendMessage)
			chatRoutes.DELETE("/messages/:id", chatHandler.DeleteMessage)
		}

		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(cfg), auth.AdminMiddleware(users))
		{
			adminRoutes.GET("/messages", chatHandler.AuditMessages)
		}
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser signs up an adult account and returns its token.
func registerUser(t *testing.T, router *gin.Engine, username string, role models.RoleID) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
		"name":     "User " + username,
		"birthday": "1995-06-15",
		"role_id":  int(role),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}
