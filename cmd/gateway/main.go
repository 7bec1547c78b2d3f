package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mvelickovic/renderq/internal/gateway/api/rest"
	"github.com/mvelickovic/renderq/internal/gateway/service"
	"github.com/mvelickovic/renderq/internal/imagestore"
	"github.com/mvelickovic/renderq/internal/shared/config"
	"github.com/mvelickovic/renderq/internal/shared/logging"
	redisstorage "github.com/mvelickovic/renderq/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.LoadGateway(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level, cfg.Logging.Format)

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	store := redisstorage.NewJobStore(client)
	queue := redisstorage.NewQueue(client)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		pingCancel()
		logger.Fatal("Backing store unreachable", "addr", cfg.Redis.Addr, "error", err)
	}
	pingCancel()

	images, err := imagestore.NewLocalStore(cfg.Images.Dir)
	if err != nil {
		logger.Fatal("Failed to open image store", "dir", cfg.Images.Dir, "error", err)
	}

	dispatch := service.NewDispatchService(store, queue, logger)
	api := rest.NewAPI(dispatch, images, store, logger)
	server := rest.NewServer(cfg.REST, api, images.Dir(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaper := service.NewReaper(
		cfg.Reaper.CheckInterval,
		cfg.Reaper.MaxAttempts,
		store,
		queue,
		logger,
	)
	go reaper.Start(ctx)

	go func() {
		logger.Info("Starting gateway API server", "addr", cfg.REST.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gateway")
	cancel()

	// Give server 30 seconds to finish serving ongoing requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Gateway stopped")
}
