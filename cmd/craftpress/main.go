// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the CraftPress server. It loads
// configuration, connects to services, starts the media reconciliation
// worker, and runs the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"craftpress/internal/cache"
	"craftpress/internal/config"
	"craftpress/internal/database"
	"craftpress/internal/handlers"
	"craftpress/internal/mediasync"
	"craftpress/internal/render"
	"craftpress/internal/router"
	"craftpress/internal/storage"
	"craftpress/internal/store"
	"craftpress/internal/token"
)

const siteName = "CraftPress Studio"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (page cache + token revocation list).
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.Redis.Password)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// JWT session manager. In non-development environments session
	// cookies are marked Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, redisClient, secureCookies)

	// Template renderer for the public site.
	renderer, err := render.New(siteName)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	authorStore := store.NewAuthorStore(db)
	postStore := store.NewPostStore(db)
	mediaStore := store.NewMediaStore(db)
	reviewStore := store.NewReviewStore(db)
	submissionStore := store.NewSubmissionStore(db)
	subscriberStore := store.NewSubscriberStore(db)
	portfolioStore := store.NewPortfolioStore(db)
	productStore := store.NewProductStore(db)

	// S3-compatible object storage is optional. The app works without it.
	storageClient, err := storage.New(
		cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey,
		cfg.S3.Bucket, cfg.S3.PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3.Endpoint,
			"bucket", cfg.S3.Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, media uploads and sync disabled")
	}

	// Media reconciliation worker. Nil when storage is not configured.
	var syncer *mediasync.Syncer
	if storageClient != nil {
		syncer = mediasync.New(storageClient, mediaStore)
	}

	// Full-page HTML cache in Redis.
	pageCache := cache.NewPageCache(redisClient, cache.DefaultPageTTL)

	// Handler groups.
	adminHandlers := handlers.NewAdmin(
		postStore, authorStore, mediaStore, reviewStore, submissionStore,
		subscriberStore, portfolioStore, productStore,
		storageClient, syncer, pageCache,
	)
	authHandlers := handlers.NewAuth(userStore, tokens)
	publicHandlers := handlers.NewPublic(
		renderer, pageCache,
		postStore, reviewStore, portfolioStore, productStore, mediaStore,
		storageClient,
	)
	formHandlers := handlers.NewPublicForms(renderer, submissionStore, subscriberStore)

	r := router.New(tokens, cfg.CORS.AllowedOrigins, adminHandlers, authHandlers, publicHandlers, formHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Background worker context, cancelled on shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if syncer != nil {
		go syncer.RunEvery(workerCtx, cfg.Sync.Interval)
		slog.Info("media sync worker started", "interval", cfg.Sync.Interval)
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	stopWorkers()

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
