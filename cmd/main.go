package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streamhub/stream-service/config"
	"github.com/streamhub/stream-service/internal/cache"
	"github.com/streamhub/stream-service/internal/postgres"
	"github.com/streamhub/stream-service/internal/service"
	httpx "github.com/streamhub/stream-service/internal/transport/http"
	"github.com/streamhub/stream-service/internal/transport/ws"
	"github.com/streamhub/stream-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting stream-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	// --- repos ---
	userRepo := postgres.NewUserRepository(db.Pool)
	streamRepo := postgres.NewStreamRepository(db.Pool)
	chatRepo := postgres.NewChatRepository(db.Pool)
	donationRepo := postgres.NewDonationRepository(db.Pool)

	// --- identity cache (optional) ---
	var userCache service.UserCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisUserCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Minute)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		userCache = rc
	}

	// --- WS hub ---
	hub := ws.NewHub()

	// --- services ---
	streamSvc := service.NewStreamService(streamRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	chatSvc := service.NewChatService(chatRepo, donationRepo, userRepo, userCache,
		ws.NewEventBroadcaster(hub), cfg.Chat.HistoryLimit, cfg.Chat.MaxMessageLen)

	wsServer := ws.NewServer(hub, chatSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(streamSvc, userSvc, chatSvc)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
