package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mise/internal/api"
	"mise/internal/config"
	"mise/internal/costing"
	"mise/internal/logger"
	"mise/internal/recipe"
	"mise/internal/report"
)

func loadRecipe(path string) (*recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &r, nil
}

func runCost(w io.Writer, path string) error {
	r, err := loadRecipe(path)
	if err != nil {
		return err
	}
	engine := costing.NewEngine(nil)
	printCostReport(w, r, engine.Breakdown(r), engine.Lines(r))
	return nil
}

func runShare(w io.Writer, path, chef string) error {
	r, err := loadRecipe(path)
	if err != nil {
		return err
	}
	b := costing.NewEngine(nil).Breakdown(r)
	fmt.Fprintln(w, report.ShareText(*r, b, chef))
	return nil
}

func runUnits(w io.Writer) {
	printUnits(w, costing.DefaultCatalog().Units())
}

func runServe(ctx context.Context, configPath, addr, store string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if store != "" {
		cfg.Store = store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), nil)
	return api.Run(ctx, cfg, log)
}
