package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Await-d/maple-blog-sub003/internal/audit"
	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/database"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/queue"
	"github.com/Await-d/maple-blog-sub003/internal/queue/workers"
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

	ctx := context.Background()

	var db *pgxpool.Pool
	if cfg.Database.URL != "" {
		db, err = database.NewPool(ctx, cfg.Database)
		if err != nil {
			slog.Warn("database unavailable, imports will not persist", "error", err)
			db = nil
		} else {
			defer db.Close()
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

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
	notifier := words.NewRedisNotifier(rdb, cfg.Filter.ReloadChannel)

	wordsSvc := words.NewService(f, cfg.Filter, store, notifier, audit.NewService(db))
	wordsSvc.Bootstrap(ctx)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	importWorker := workers.NewWordImportWorker(wordsSvc)
	reloadWorker := workers.NewDictionaryReloadWorker(wordsSvc)

	registry.RegisterFunc(queue.TypeWordImport, importWorker.ProcessTask)
	registry.RegisterFunc(queue.TypeDictionaryReload, reloadWorker.ProcessTask)

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
