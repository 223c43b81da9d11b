package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Await-d/maple-blog-sub003/internal/api"
	"github.com/Await-d/maple-blog-sub003/internal/audit"
	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/database"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/words"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Database connection (optional — gracefully handle missing DATABASE_URL)
	var db *pgxpool.Pool
	if cfg.Database.URL != "" {
		db, err = database.NewPool(ctx, cfg.Database)
		if err != nil {
			slog.Warn("database unavailable, running without persistence", "error", err)
			db = nil
		} else {
			defer db.Close()
			if err := database.RunMigrations(ctx, db, cfg.Database.MigrationsPath); err != nil {
				slog.Warn("migrations failed", "error", err)
			}
		}
	}

	// Redis connection (optional)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, running without cache and reload fan-out", "error", err)
		rdb.Close()
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// Sensitive word filter
	f := filter.New(filter.Options{
		MaskChar:              cfg.Filter.MaskChar,
		FuzzyMatch:            cfg.Filter.FuzzyMatch,
		CaseSensitive:         cfg.Filter.CaseSensitive,
		MediumReviewThreshold: cfg.Filter.MediumReviewThreshold,
	})

	var store words.Store
	if db != nil {
		store = words.NewPostgresStore(db)
	}
	var notifier words.Notifier
	var redisNotifier *words.RedisNotifier
	if rdb != nil {
		redisNotifier = words.NewRedisNotifier(rdb, cfg.Filter.ReloadChannel)
		notifier = redisNotifier
	}

	wordsSvc := words.NewService(f, cfg.Filter, store, notifier, audit.NewService(db))
	wordsSvc.Bootstrap(ctx)

	listenCtx, stopListening := context.WithCancel(ctx)
	defer stopListening()
	if redisNotifier != nil {
		redisNotifier.Listen(listenCtx, wordsSvc.HandleReloadSignal)
	}

	// Setup router
	router := api.NewRouter(db, rdb, cfg, f, wordsSvc)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting moderation API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
