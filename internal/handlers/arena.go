package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/arena"
	"github.com/astralisgame/astralis-backend/internal/platform/apierr"
	"github.com/astralisgame/astralis-backend/internal/sse"
)

type ArenaHandler struct {
	manager *arena.Manager
	hub     *sse.Hub
}

func NewArenaHandler(manager *arena.Manager, hub *sse.Hub) *ArenaHandler {
	return &ArenaHandler{manager: manager, hub: hub}
}

type arenaPlayerRequest struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	PlayerLevel int    `json:"playerLevel"`
}

func arenaError(c *gin.Context, err error) {
	if errors.Is(err, arena.ErrRoomNotFound) {
		RespondError(c, http.StatusNotFound, apierr.NotFound("Room not found"))
		return
	}
	RespondError(c, http.StatusBadRequest, err)
}

func (ah *ArenaHandler) Create(c *gin.Context) {
	var req arenaPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}
	code := ah.manager.Create(arena.Occupant{
		ID:    req.PlayerID,
		Name:  req.PlayerName,
		Level: req.PlayerLevel,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "code": code})
}

func (ah *ArenaHandler) Join(c *gin.Context) {
	var req arenaPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}
	host, err := ah.manager.Join(c.Param("code"), arena.Occupant{
		ID:    req.PlayerID,
		Name:  req.PlayerName,
		Level: req.PlayerLevel,
	})
	if err != nil {
		arenaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "host": host})
}

// Stream opens the room's push channel. The first frame is always the
// connected snapshot so a late subscriber sees current occupants and any
// already-decided winner.
func (ah *ArenaHandler) Stream(c *gin.Context) {
	client, snapshot, err := ah.manager.Subscribe(c.Param("code"))
	if err != nil {
		arenaError(c, err)
		return
	}
	defer ah.manager.Unsubscribe(client)

	client.Outbound <- map[string]any{"type": "connected", "room": snapshot}
	ah.hub.Serve(c.Writer, c.Request, client)
}

func (ah *ArenaHandler) ReportProgress(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId"`
		XP       int    `json:"xp"`
		TotalXP  int    `json:"totalXp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}
	if err := ah.manager.ReportProgress(c.Param("code"), req.PlayerID, req.XP, req.TotalXP); err != nil {
		arenaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *ArenaHandler) State(c *gin.Context) {
	state, err := ah.manager.State(c.Param("code"))
	if err != nil {
		arenaError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Leave always succeeds; leaving a dead room is a no-op, not an error.
func (ah *ArenaHandler) Leave(c *gin.Context) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.PlayerID) != "" {
		ah.manager.Leave(c.Param("code"), req.PlayerID)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *ArenaHandler) Lobby(c *gin.Context) {
	c.JSON(http.StatusOK, ah.manager.ListOpen())
}
