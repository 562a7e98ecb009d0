package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/api"
	"github.com/lieyanc/studypk/internal/auth"
	"github.com/lieyanc/studypk/internal/config"
	"github.com/lieyanc/studypk/internal/service"
	"github.com/lieyanc/studypk/internal/storage"
)

type app struct {
	logger internal.Logger
	store  storage.Store
	ledger *service.Ledger
	auth   auth.Provider
}

func (a *app) Logger() internal.Logger { return a.logger }
func (a *app) Store() storage.Store    { return a.store }
func (a *app) Ledger() *service.Ledger { return a.ledger }
func (a *app) Auth() auth.Provider     { return a.auth }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	provider, err := auth.NewJWTProvider(cfg.JWTSecret, cfg.PasswordHash, cfg.Password, logger)
	if err != nil {
		logger.Fatalf("failed to init auth: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &app{
		logger: logger,
		store:  store,
		ledger: service.NewLedger(store, store, store, logger),
		auth:   provider,
	}
	r := api.NewRouter(a)

	logger.Infof("Server running on %s (backend=%s)", cfg.Addr, cfg.DBType)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
