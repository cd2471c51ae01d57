package app

import (
	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/arena"
	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/handlers"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/server"
	"github.com/astralisgame/astralis-backend/internal/services"
	"github.com/astralisgame/astralis-backend/internal/sse"
	"github.com/astralisgame/astralis-backend/internal/store"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Chat   *handlers.ChatHandler
	Game   *handlers.GameHandler
	Shop   *handlers.ShopHandler
	Arena  *handlers.ArenaHandler
}

func wireHandlers(log *logger.Logger, engine *game.Engine, chat *services.ChatService, filter *services.ProfanityFilter, users *store.UserStore, manager *arena.Manager, hub *sse.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: handlers.NewHealthHandler(),
		Auth:   handlers.NewAuthHandler(users),
		Chat:   handlers.NewChatHandler(log, engine, chat, filter),
		Game:   handlers.NewGameHandler(engine),
		Shop:   handlers.NewShopHandler(users),
		Arena:  handlers.NewArenaHandler(manager, hub),
	}
}

func wireRouter(log *logger.Logger, cfg Config, h Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return server.NewRouter(server.RouterConfig{
		Log:           log,
		AllowOrigins:  cfg.AllowOrigins,
		HealthHandler: h.Health,
		AuthHandler:   h.Auth,
		ChatHandler:   h.Chat,
		GameHandler:   h.Game,
		ShopHandler:   h.Shop,
		ArenaHandler:  h.Arena,
	})
}
