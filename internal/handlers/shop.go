package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/store"
	"github.com/astralisgame/astralis-backend/internal/types"
)

// ShopHandler mutates the stored account record; shop and skill purchases
// are the only operations where the server, not the client, owns the write.
type ShopHandler struct {
	users *store.UserStore
}

func NewShopHandler(users *store.UserStore) *ShopHandler {
	return &ShopHandler{users: users}
}

type shopRequest struct {
	PlayerID string `json:"playerId"`
	ItemID   string `json:"itemId"`
	SkillID  string `json:"skillId"`
}

// mutate runs fn against the player's stored state and maps the outcome to
// the {success, gameState, message} shape. Business failures are 400 with
// the reason string; unknown players are 404.
func (sh *ShopHandler) mutate(c *gin.Context, playerID string, fn func(*types.GameState) (string, error)) {
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}
	var message string
	var state *types.GameState
	err := sh.users.Mutate(playerID, func(rec *store.UserRecord) error {
		msg, err := fn(rec.State)
		if err != nil {
			return err
		}
		message = msg
		state = rec.State
		return nil
	})
	if errors.Is(err, store.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "gameState": state, "message": message})
}

func (sh *ShopHandler) Buy(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sh.mutate(c, req.PlayerID, func(gs *types.GameState) (string, error) {
		item, err := game.Purchase(&gs.Player, req.ItemID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Purchased %s!", item.Name), nil
	})
}

func (sh *ShopHandler) Equip(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sh.mutate(c, req.PlayerID, func(gs *types.GameState) (string, error) {
		if err := game.Equip(&gs.Player, req.ItemID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Equipped %s!", req.ItemID), nil
	})
}

func (sh *ShopHandler) UnlockSkill(c *gin.Context) {
	var req shopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sh.mutate(c, req.PlayerID, func(gs *types.GameState) (string, error) {
		skill, err := game.UnlockSkill(&gs.Player, req.SkillID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Unlocked %s!", skill.Name), nil
	})
}
