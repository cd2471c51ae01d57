package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/types"
)

type GameHandler struct {
	engine *game.Engine
}

func NewGameHandler(engine *game.Engine) *GameHandler {
	return &GameHandler{engine: engine}
}

type gameStateRequest struct {
	GameState *types.GameState `json:"gameState"`
}

func bindGameState(c *gin.Context) *types.GameState {
	var req gameStateRequest
	_ = c.ShouldBindJSON(&req)
	return resolveGameState(req.GameState)
}

func badgeLists(p *types.Player) (earned, locked []game.Badge) {
	earned = make([]game.Badge, 0, len(p.Badges))
	locked = make([]game.Badge, 0, len(game.BadgeDefinitions))
	for _, b := range game.BadgeDefinitions {
		if p.HasBadge(b.ID) {
			earned = append(earned, b)
		} else {
			locked = append(locked, b)
		}
	}
	return earned, locked
}

// Stats aggregates the dashboard payload: player, title progress, streaks,
// lifetime statistics and the badge split.
func (gh *GameHandler) Stats(c *gin.Context) {
	gs := bindGameState(c)
	p := &gs.Player

	current := game.TitleFor(p.TotalXPEarned)
	next := game.NextTitle(p.TotalXPEarned)
	nextName := "Max"
	xpToNext := 0
	if next != nil {
		nextName = next.Name
		xpToNext = next.MinXP - p.TotalXPEarned
	}

	earned, locked := badgeLists(p)
	c.JSON(http.StatusOK, gin.H{
		"player": p,
		"stats":  p.Stats,
		"title": gin.H{
			"name":            p.Title,
			"icon":            current.Icon,
			"nextTitle":       nextName,
			"xpToNextTitle":   xpToNext,
			"minXpForCurrent": current.MinXP,
			"maxXpForCurrent": current.MaxXP,
		},
		"streaks":    gin.H{"current": p.Streak, "longest": p.LongestStreak},
		"statistics": p.Statistics,
		"badges": gin.H{
			"earned":         earned,
			"locked":         locked,
			"totalEarned":    len(earned),
			"totalAvailable": len(game.BadgeDefinitions),
		},
	})
}

func (gh *GameHandler) Badges(c *gin.Context) {
	gs := bindGameState(c)
	earned, locked := badgeLists(&gs.Player)
	c.JSON(http.StatusOK, gin.H{
		"earned":         earned,
		"locked":         locked,
		"totalEarned":    len(earned),
		"totalAvailable": len(game.BadgeDefinitions),
	})
}

// DailyQuests regenerates the daily set if the day rolled over, then returns
// the current set with completion counters.
func (gh *GameHandler) DailyQuests(c *gin.Context) {
	gs := bindGameState(c)
	gh.engine.EnsureDailyQuests(gs)
	c.JSON(http.StatusOK, gin.H{
		"quests":          gs.DailyQuests,
		"completedCount":  game.CompletedCount(gs.DailyQuests),
		"totalQuests":     len(gs.DailyQuests),
		"completionBonus": 0,
	})
}

func (gh *GameHandler) WeeklyQuests(c *gin.Context) {
	gs := bindGameState(c)
	gh.engine.EnsureWeeklyQuests(gs)
	c.JSON(http.StatusOK, gin.H{
		"quests":          gs.WeeklyQuests,
		"completedCount":  game.CompletedCount(gs.WeeklyQuests),
		"completionBonus": 0,
	})
}

// InitProfile seeds selected attributes and the personality type from the
// onboarding quiz. Only the five quiz-derived attributes are overwritten.
func (gh *GameHandler) InitProfile(c *gin.Context) {
	var req struct {
		GameState       *types.GameState   `json:"gameState"`
		Stats           *types.PlayerStats `json:"stats"`
		PersonalityType string             `json:"personalityType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	gs := resolveGameState(req.GameState)

	if req.Stats != nil {
		gs.Player.Stats.Creativity = req.Stats.Creativity
		gs.Player.Stats.Productivity = req.Stats.Productivity
		gs.Player.Stats.Energy = req.Stats.Energy
		gs.Player.Stats.Kindness = req.Stats.Kindness
		gs.Player.Stats.Awareness = req.Stats.Awareness
	}
	if req.PersonalityType != "" {
		gs.Player.PersonalityType = req.PersonalityType
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "player": gs.Player, "gameState": gs})
}

func (gh *GameHandler) GameStatus(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewDefaultGameState(time.Now()))
}

func (gh *GameHandler) GameReset(c *gin.Context) {
	c.JSON(http.StatusOK, types.NewDefaultGameState(time.Now()))
}
