package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"wishlist/internal/config"
	"wishlist/internal/core/extract"
	"wishlist/internal/core/good"
	"wishlist/internal/core/job"
	"wishlist/internal/core/refresh"
	"wishlist/internal/logger"
	rds "wishlist/internal/platform/redis"
	tasks "wishlist/internal/platform/tasks"
	"wishlist/internal/server"
	"wishlist/internal/worker"
)

func main() {
	cfg := config.Load()
	log.Printf("[wishlist] starting at %s (env=%s)\n", cfg.HTTPAddr, cfg.AppEnv)

	logr := logger.New("main")

	// Redis client
	redisSvc, err := rds.New(rds.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer redisSvc.Close()

	// Postgres repository for goods
	goodRepo, err := good.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer goodRepo.Close()
	if err := goodRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Asynq client and server
	taskClient := tasks.New(redisSvc)
	asynqServer := asynq.NewServer(redisSvc.AsynqRedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	// Core services
	jobSvc := job.NewJobService(redisSvc)
	extractSvc, err := extract.NewService(cfg, redisSvc)
	if err != nil {
		log.Fatalf("extract service: %v", err)
	}
	goodSvc := good.NewService(goodRepo, extractSvc)
	refreshSvc := refresh.NewService(cfg, jobSvc, taskClient, goodRepo, extractSvc)

	// Worker mux
	mux := worker.NewMux()
	mux.HandleFunc(refresh.TaskTypeRefresh, refreshSvc.HandleTask)

	// Start worker
	_, workerCancel := context.WithCancel(context.Background())
	go func() {
		if err := asynqServer.Start(mux.Mux()); err != nil {
			log.Printf("[worker] stopped: %v\n", err)
		}
	}()

	// Nightly price sweep
	scheduler := refresh.NewScheduler(cfg.RefreshCron, refreshSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName: "Wishlist Engine",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			encoder := json.NewEncoder(&buf)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})

	deps := server.Dependencies{
		Job:      jobSvc,
		Extract:  extractSvc,
		Goods:    goodSvc,
		GoodRepo: goodRepo,
		Refresh:  refreshSvc,
		Tasks:    taskClient,
		Redis:    redisSvc,
	}
	healthHandler := server.RegisterRoutes(app, deps)

	// Mark application as ready after all services are initialized
	go func() {
		time.Sleep(5 * time.Second)
		healthHandler.SetReady()
	}()

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("Shutting down...")
		workerCancel()
		scheduler.Stop()
		asynqServer.Shutdown()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("server listen: %v", err)
	}
}
