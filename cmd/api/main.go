package main

import (
	"context"
	"fmt"

	"mise/internal/api"
	"mise/internal/config"
	"mise/internal/logger"
)

func main() {
	ctx := context.Background()

	// Read configuration from config.json, .env and the environment
	cfg, err := config.Load("config.json")
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), nil)

	if err := api.Run(ctx, cfg, log); err != nil {
		panic(fmt.Errorf("server stopped: %w", err))
	}
}
