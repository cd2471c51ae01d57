package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/handlers"
	"github.com/astralisgame/astralis-backend/internal/middleware"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	AllowOrigins []string

	HealthHandler *handlers.HealthHandler
	AuthHandler   *handlers.AuthHandler
	ChatHandler   *handlers.ChatHandler
	GameHandler   *handlers.GameHandler
	ShopHandler   *handlers.ShopHandler
	ArenaHandler  *handlers.ArenaHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	// Accounts
	router.POST("/auth/signup", cfg.AuthHandler.Signup)
	router.POST("/auth/login", cfg.AuthHandler.Login)
	router.POST("/auth/sync", cfg.AuthHandler.Sync)

	// Chat & oracle
	router.POST("/chat", cfg.ChatHandler.Chat)
	router.POST("/oracle", cfg.ChatHandler.Oracle)
	router.POST("/generate-riddles", cfg.ChatHandler.GenerateRiddles)

	// Progression
	router.POST("/stats", cfg.GameHandler.Stats)
	router.POST("/badges", cfg.GameHandler.Badges)
	router.POST("/daily-quests", cfg.GameHandler.DailyQuests)
	router.POST("/weekly-quests", cfg.GameHandler.WeeklyQuests)
	router.POST("/init-profile", cfg.GameHandler.InitProfile)
	router.GET("/game-status", cfg.GameHandler.GameStatus)
	router.POST("/game-reset", cfg.GameHandler.GameReset)

	// Shop & skills
	router.POST("/shop/buy", cfg.ShopHandler.Buy)
	router.POST("/shop/equip", cfg.ShopHandler.Equip)
	router.POST("/skills/unlock", cfg.ShopHandler.UnlockSkill)

	// Arena
	arena := router.Group("/arena")
	{
		arena.POST("/create", cfg.ArenaHandler.Create)
		arena.GET("/lobby", cfg.ArenaHandler.Lobby)
		arena.POST("/join/:code", cfg.ArenaHandler.Join)
		arena.GET("/stream/:code", cfg.ArenaHandler.Stream)
		arena.POST("/update/:code", cfg.ArenaHandler.ReportProgress)
		arena.GET("/state/:code", cfg.ArenaHandler.State)
		arena.POST("/leave/:code", cfg.ArenaHandler.Leave)
	}

	return router
}
