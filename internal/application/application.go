package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"vibelink-backend/internal/config"
	"vibelink-backend/internal/database"
	"vibelink-backend/internal/handlers"
	"vibelink-backend/internal/router"
	"vibelink-backend/internal/services"
	"vibelink-backend/internal/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API is the HTTP + WebSocket application.
type API struct {
	cfg *config.Config
	srv *http.Server
	db  *gorm.DB
	log *zap.Logger
}

// NewAPI wires the application: config → database → logger → services →
// gateway → router.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	sessionService := services.NewSessionService(db)
	scoringService := services.NewScoringService()
	interactionService := services.NewInteractionService(db, sessionService, scoringService)
	matchService := services.NewMatchService(db, sessionService, nil)

	hub := ws.NewHub(logger)
	gateway := ws.NewGateway(hub, sessionService, interactionService, matchService, userService, logger)

	r := router.New(router.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(userService, sessionService),
		Room:        handlers.NewRoomHandler(roomService, sessionService),
		Session:     handlers.NewSessionHandler(sessionService, matchService, hub),
		Interaction: handlers.NewInteractionHandler(interactionService, hub),
		WS:          handlers.NewWSHandler(gateway, authService, logger),
		Health:      handlers.NewHealthHandler(db),
	}, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, srv: srv, db: db, log: logger}, nil
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (a *API) Run(ctx context.Context) error {
	a.log.Info("server starting", zap.String("addr", a.srv.Addr), zap.String("env", a.cfg.AppEnv))

	errCh := make(chan error, 1)
	go func() {
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.AppEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
