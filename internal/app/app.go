package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/arena"
	"github.com/astralisgame/astralis-backend/internal/game"
	"github.com/astralisgame/astralis-backend/internal/platform/logger"
	"github.com/astralisgame/astralis-backend/internal/services"
	"github.com/astralisgame/astralis-backend/internal/sse"
	"github.com/astralisgame/astralis-backend/internal/store"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Router *gin.Engine
	Hub    *sse.Hub
	Arena  *arena.Manager
	Users  *store.UserStore
	cancel context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	users, err := store.NewUserStore(log, cfg.UsersFile)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init user store: %w", err)
	}

	hub := sse.NewHub(log)
	manager := arena.NewManager(log, hub)

	engine := game.NewEngine(log)
	filter := services.NewProfanityFilter(log, cfg.BadWordsFile)
	chat := services.NewChatService(log, services.NewAIClient(log))

	handlerset := wireHandlers(log, engine, chat, filter, users, manager, hub)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:    log,
		Cfg:    cfg,
		Router: router,
		Hub:    hub,
		Arena:  manager,
		Users:  users,
	}, nil
}

// Start launches the background room sweep.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.Arena.Start(ctx)
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
