package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mvelickovic/renderq/internal/imagestore"
	"github.com/mvelickovic/renderq/internal/shared/config"
	"github.com/mvelickovic/renderq/internal/shared/logging"
	redisstorage "github.com/mvelickovic/renderq/internal/storage/redis"
	"github.com/mvelickovic/renderq/internal/worker/api/grpc"
	"github.com/mvelickovic/renderq/internal/worker/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.LoadWorker(*configPath)
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

	images, err := imagestore.NewLocalStore(cfg.Images.Dir)
	if err != nil {
		logger.Fatal("Failed to open image store", "dir", cfg.Images.Dir, "error", err)
	}

	inferencer, err := grpc.NewInferenceClient(cfg.Inference.Addr, cfg.Inference.GRPC)
	if err != nil {
		logger.Fatal("Failed to create inference client", "error", err)
	}
	defer inferencer.Close()

	controller := service.NewController(
		service.Config{
			DeviceID:    cfg.Device.ID,
			LeaseTTL:    cfg.Device.LeaseTTL,
			PollTimeout: cfg.Device.PollTimeout,
			CallTimeout: cfg.Inference.CallTimeout,
			MaxAttempts: cfg.Device.MaxAttempts,
		},
		store,
		queue,
		inferencer,
		images,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go controller.Run(ctx)

	logger.Info("Worker started",
		"device", cfg.Device.ID,
		"inference_addr", cfg.Inference.Addr,
		"lease_ttl", cfg.Device.LeaseTTL.String(),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()

	logger.Info("Shutting down worker", "device", cfg.Device.ID)
}
