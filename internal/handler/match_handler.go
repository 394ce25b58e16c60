package handler

import (
	"log"
	"net/http"

	"heartlink/backend/internal/auth"
	"heartlink/backend/internal/cache"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// MatchHandler serves match creation and listing.
type MatchHandler struct {
	matches *store.MatchStore
	cache   *cache.RedisCache
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matches *store.MatchStore, cache *cache.RedisCache) *MatchHandler {
	return &MatchHandler{matches: matches, cache: cache}
}

// CreateMatchInput defines the structure for creating a match.
type CreateMatchInput struct {
	Username string `json:"username" binding:"required" example:"bob"`
}

// MatchSummaryResponse defines the counterpart summary attached to each match.
type MatchSummaryResponse struct {
	Username   string  `json:"username" example:"bob"`
	Name       string  `json:"name" example:"Bob Example"`
	ProfileURL *string `json:"profile_url"`
	Role       string  `json:"role" example:"male"`
}

// CreateMatch godoc
// @Summary      Create a match
// @Description  Records a match between the caller and another account.
// @Description  Duplicate pairs are rejected regardless of direction.
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateMatchInput true "Counterpart username"
// @Success      201  {object}  map[string]interface{} "{"success": true, "message": "Match created"}"
// @Failure      400  {object}  ErrorResponse "Self-match or missing username"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Counterpart not found"
// @Failure      409  {object}  ErrorResponse "Match already exists"
// @Router       /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	var input CreateMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	match, err := h.matches.Create(c.Request.Context(), caller, input.Username)
	if err != nil {
		fail(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateMatchCount(c.Request.Context(), match.UserA, match.UserB); err != nil {
			log.Printf("Failed to invalidate match counts for %s/%s: %v", match.UserA, match.UserB, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Match created successfully",
		"match": gin.H{
			"username":   input.Username,
			"created_at": match.CreatedAt,
		},
	})
}

// ListMatches godoc
// @Summary      List the caller's matches
// @Description  Returns the other participant's public summary for every
// @Description  match the caller is part of, in creation order.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"success": true, "count": 2, "matches": [...]}"
// @Failure      401  {object}  ErrorResponse
// @Router       /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)

	summaries, err := h.matches.ListFor(c.Request.Context(), caller)
	if err != nil {
		fail(c, err)
		return
	}

	responses := make([]MatchSummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = MatchSummaryResponse{
			Username:   s.Username,
			Name:       s.Name,
			ProfileURL: s.ProfileURL,
			Role:       s.RoleID.Name(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(responses),
		"matches": responses,
	})
}

// MatchCount godoc
// @Summary      Count the caller's matches
// @Description  Returns the caller's match count, served from cache when warm.
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"success": true, "count": 3}"
// @Failure      401  {object}  ErrorResponse
// @Router       /matches/count [get]
func (h *MatchHandler) MatchCount(c *gin.Context) {
	caller := c.GetString(auth.ContextUsername)
	ctx := c.Request.Context()

	if h.cache != nil {
		if count, ok, err := h.cache.GetMatchCount(ctx, caller); err == nil && ok {
			c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
			return
		}
	}

	count, err := h.matches.CountFor(ctx, caller)
	if err != nil {
		fail(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetMatchCount(ctx, caller, count); err != nil {
			log.Printf("Failed to cache match count for %s: %v", caller, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}
