// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moshiurrahmandeap11/osman-server/internal/cache"
	"github.com/moshiurrahmandeap11/osman-server/internal/config"
	"github.com/moshiurrahmandeap11/osman-server/internal/database"
	"github.com/moshiurrahmandeap11/osman-server/internal/handlers"
	"github.com/moshiurrahmandeap11/osman-server/internal/router"
	"github.com/moshiurrahmandeap11/osman-server/internal/store"
	"github.com/moshiurrahmandeap11/osman-server/internal/timeline"
	"github.com/moshiurrahmandeap11/osman-server/internal/upload"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.IsDev() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	// Valkey is optional. Without it the list cache is nil and every
	// read goes to Postgres.
	var lists *cache.ListCache
	if cfg.ValkeyHost != "" {
		valkey, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer valkey.Close()
		lists = cache.NewListCache(valkey, cache.DefaultListTTL)
	} else {
		slog.Info("valkey not configured, list caching disabled")
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	categories := store.NewCategoryStore(db)
	posts := store.NewPostStore(db)
	requests := store.NewRequestStore(db)

	registry := timeline.NewRegistry(categories, posts)
	catalog := timeline.NewCatalog(posts, categories, uploads)
	workflow := timeline.NewWorkflow(requests, posts, categories, uploads)

	r := router.New(
		handlers.NewCategories(registry),
		handlers.NewPosts(catalog, uploads, lists),
		handlers.NewRequests(workflow, uploads, lists),
		uploads.Dir(),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}
