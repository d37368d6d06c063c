package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mmynk/stockroom/internal/api"
	"github.com/mmynk/stockroom/internal/config"
	"github.com/mmynk/stockroom/internal/seed"
	"github.com/mmynk/stockroom/internal/service"
	"github.com/mmynk/stockroom/internal/storage/sqlite"
	"github.com/mmynk/stockroom/internal/views"
	"github.com/mmynk/stockroom/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// The default dataset is materialized once here and injected into
	// both the store (seeding) and the service (read-only fallback).
	defaults := seed.NewProvider()

	store, err := sqlite.New(cfg.DBPath, defaults)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	svc := service.New(store, defaults, views.LogRefresher{})
	handler := api.New(svc).Router()

	addr := ":" + cfg.HTTPPort
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
