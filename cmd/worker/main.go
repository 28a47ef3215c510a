package main

import (
	"os"
	"os/signal"
	"syscall"

	"newsapi-backend/internal/infrastructure/cache"
	"newsapi-backend/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	logger.Init(getEnv("APP_ENV", "development"), getEnv("LOG_LEVEL", "info"))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}

	redis := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	defer redis.Close()

	if err := startServices(cfg, redis); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	handlers := initializeHandlers(cfg)
	srv := setupAsynqServer(cfg, redis, handlers)

	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
}
