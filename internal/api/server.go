package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mise/internal/assistant"
	"mise/internal/config"
	"mise/internal/logger"
	"mise/internal/platform/gemini"
	"mise/internal/platform/localllm"
	"mise/internal/snapshot"
)

// NewRouter builds the gin engine with CORS for the UI origins.
func NewRouter(h *Handler, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h.Register(r)
	return r
}

// NewGenerator picks Gemini when an API key is configured and the local
// LLM otherwise. The returned close func is never nil.
func NewGenerator(ctx context.Context, cfg config.Config, log *logger.Logger) (assistant.Generator, func() error, error) {
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, func() error { return nil }, fmt.Errorf("error creating gemini client: %w", err)
		}
		log.Info("assistant: gemini (%s)", cfg.GeminiModel)
		return client, client.Close, nil
	}
	log.Info("assistant: local LLM at %s", cfg.LocalLLMURL)
	return localllm.NewClient(cfg.LocalLLMURL, cfg.LocalLLMModel, log), func() error { return nil }, nil
}

// Run wires the store, the assistant and the handlers and serves until the
// listener fails.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	repo, err := snapshot.Open(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	saved, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load saved state: %w", err)
	}
	if saved == nil {
		log.Info("no saved state, starting fresh")
	}

	gen, closeGen, err := NewGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGen()

	handler := NewHandler(saved, assistant.NewService(gen), repo, log)
	r := NewRouter(handler, cfg.AllowOrigins)

	log.Info("listening on %s (store: %s)", cfg.Addr, cfg.Store)
	return r.Run(cfg.Addr)
}
