package handler

import (
	"net/http"
	"time"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/config"
	"heartlink/backend/internal/models"
	"heartlink/backend/internal/store"
	"heartlink/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves signup, login and token introspection.
type AuthHandler struct {
	users *store.UserStore
	cfg   *config.Config
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username   string `json:"username" binding:"required" example:"alice"`
	Password   string `json:"password" binding:"required,min=8" example:"password123"`
	Name       string `json:"name" binding:"required" example:"Alice Example"`
	Birthday   string `json:"birthday" binding:"required" example:"1995-06-15"`
	Occupation string `json:"occupation" example:"engineer"`
	Bio        string `json:"bio"`
	RoleID     int    `json:"role_id" binding:"required" example:"1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new account and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]interface{} "{"success": true, "token": "...", "user": {...}}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	birthday, err := time.Parse("2006-01-02", input.Birthday)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid birthday, expected YYYY-MM-DD"})
		return
	}

	if models.Age(birthday, time.Now()) < models.MinimumAge {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You must be at least 18 years old"})
		return
	}

	role := models.RoleID(input.RoleID)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(input.Password+h.cfg.PasswordPepper), h.cfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	occupation := input.Occupation
	if occupation == "" {
		occupation = "unemployed"
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
		Birthday:     birthday,
		Occupation:   occupation,
		Bio:          input.Bio,
		RoleID:       role,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		fail(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.Username, user.RoleID, h.cfg.JWTSecret, h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    buildProfileResponse(&user),
	})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user and returns a new token. Unknown username
// @Description  and wrong password produce the same response.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{} "{"success": true, "token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	// A missing user and a bad password must be indistinguishable to the
	// caller, so both paths end in the same 401.
	user, err := h.users.Get(c.Request.Context(), input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(input.Password+h.cfg.PasswordPepper)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
		return
	}

	token, err := jwt.GenerateToken(user.Username, user.RoleID, h.cfg.JWTSecret, h.tokenTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"username": user.Username,
			"name":     user.Name,
			"role":     user.RoleID.Name(),
		},
	})
}

// Profile godoc
// @Summary      Inspect the current token
// @Description  Echoes the validated claims of the caller's bearer token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	username, _ := c.Get(auth.ContextUsername)
	role, _ := c.Get(auth.ContextRole)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"username": username,
			"role":     role.(models.RoleID).Name(),
		},
	})
}

func (h *AuthHandler) tokenTTL() time.Duration {
	hours := h.cfg.JWTExpiryHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}
