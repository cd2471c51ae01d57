package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/services"
	"github.com/astralisgame/astralis-backend/internal/types"
)

type ChatHandler struct {
	log    *logger.Logger
	engine *game.Engine
	chat   *services.ChatService
	filter *services.ProfanityFilter
}

func NewChatHandler(log *logger.Logger, engine *game.Engine, chat *services.ChatService, filter *services.ProfanityFilter) *ChatHandler {
	return &ChatHandler{log: log, engine: engine, chat: chat, filter: filter}
}

// completionEnvelope wraps game-master text in the chat-completion shape the
// browser client has always consumed.
func completionEnvelope(text string) gin.H {
	return gin.H{
		"candidates": []gin.H{
			{"content": gin.H{"parts": []gin.H{{"text": text}}}},
		},
	}
}

// Chat is the main gameplay endpoint: filter the message, award XP against
// the snapshot, then ask the game master for the next story beat. XP is
// granted for the engagement whether or not the completion succeeds.
func (ch *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message   string           `json:"message"`
		Type      string           `json:"type"`
		Question  string           `json:"question"`
		Riddle    string           `json:"riddle"`
		HintLevel int              `json:"hintLevel"`
		GameState *types.GameState `json:"gameState"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	gs := resolveGameState(req.GameState)

	if req.Type == "oracle" {
		hint := ch.chat.OracleHint(c.Request.Context(), req.Question, req.Riddle, gs.Player.Language, req.HintLevel)
		c.JSON(http.StatusOK, gin.H{"hint": hint, "gameState": gs})
		return
	}

	// Debug cheat kept from the original client builds.
	if strings.TrimSpace(req.Message) == "/lvlup444" {
		gs.Player.Level += 10
		if gs.Player.Level > game.MaxLevel {
			gs.Player.Level = game.MaxLevel
		}
		gs.Player.SkillPoints += 10
		gs.Player.Credits += 500
		resp := completionEnvelope("SYSTEM OVERRIDE: Cheat Code Accepted. +10 Levels Granted. Enjoy the power.")
		resp["gameState"] = gs
		c.JSON(http.StatusOK, resp)
		return
	}

	message := req.Message
	if ch.filter.ContainsProfanity(message) {
		message = ch.filter.CleanText(message)
	}

	result := ch.engine.AwardXP(gs, message)
	text := ch.chat.GameMasterReply(c.Request.Context(), message, gs.Player.Language)

	resp := completionEnvelope(text)
	resp["gameState"] = gs
	resp["xpAwarded"] = result
	c.JSON(http.StatusOK, resp)
}

// Oracle sells a riddle hint for XP.
func (ch *ChatHandler) Oracle(c *gin.Context) {
	var req struct {
		Question  string           `json:"question"`
		Riddle    string           `json:"riddle"`
		GameState *types.GameState `json:"gameState"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.GameState == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No game state"})
		return
	}
	gs := resolveGameState(req.GameState)

	cost := game.OracleHintCost(&gs.Player)
	if gs.Player.XP < cost {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough XP"})
		return
	}

	hint := ch.chat.OracleHint(c.Request.Context(), req.Question, req.Riddle, gs.Player.Language, 1)
	gs.Player.XP -= cost
	c.JSON(http.StatusOK, gin.H{"hint": hint, "gameState": gs})
}

// GenerateRiddles returns three fresh anomaly riddles, or the static
// fallback set when the provider is unavailable.
func (ch *ChatHandler) GenerateRiddles(c *gin.Context) {
	var req struct {
		Language string `json:"language"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Language == "" {
		req.Language = "en"
	}
	riddles := ch.chat.GenerateRiddles(c.Request.Context(), req.Language)
	c.JSON(http.StatusOK, gin.H{"riddles": riddles})
}
