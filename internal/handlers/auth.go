package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/platform/apierr"
	"github.com/astralisgame/astralis-backend/internal/store"
	"github.com/astralisgame/astralis-backend/internal/types"
)

type AuthHandler struct {
	users *store.UserStore
}

func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

func (ah *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, apierr.BadRequest("Username and password required"))
		return
	}
	record, err := ah.users.Signup(req.Username, req.Password, req.Language)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "playerId": record.PlayerID, "gameState": record.State})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.BadRequest("invalid request body"))
		return
	}
	record, err := ah.users.Login(req.Username, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, apierr.Unauthorized("%v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "playerId": record.PlayerID, "gameState": record.State})
}

// Sync overwrites the stored snapshot with whatever the client holds. The
// client owns the truth in this mode.
func (ah *AuthHandler) Sync(c *gin.Context) {
	var req struct {
		PlayerID  string           `json:"playerId"`
		GameState *types.GameState `json:"gameState"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.GameState == nil {
		RespondError(c, http.StatusBadRequest, apierr.BadRequest("invalid request body"))
		return
	}
	if err := ah.users.SyncState(req.PlayerID, req.GameState); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, apierr.NotFound("User not found"))
			return
		}
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
