package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Menova10/menova-empower-journey/internal/cache"
	"github.com/Menova10/menova-empower-journey/internal/config"
	"github.com/Menova10/menova-empower-journey/internal/events"
	"github.com/Menova10/menova-empower-journey/internal/functions"
	"github.com/Menova10/menova-empower-journey/internal/handler"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/repository"
	"github.com/Menova10/menova-empower-journey/internal/router"
	"github.com/Menova10/menova-empower-journey/internal/scheduler"
	"github.com/Menova10/menova-empower-journey/internal/service"
	"github.com/Menova10/menova-empower-journey/internal/source"
	"github.com/Menova10/menova-empower-journey/seeds"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to parse database config", logger.Error(err))
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("failed to connect to database", logger.Error(err))
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal("database not ready", logger.Error(err))
	}
	log.Info("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrate(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatal("failed to migrate down", logger.Error(err))
		}
		log.Info("migrations dropped")
		return
	}

	if err := migrate(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatal("failed to migrate up", logger.Error(err))
	}
	log.Info("migrations applied")

	repo := repository.NewRepository(pool)

	// ------------ Setup Seed Data ---------------
	if cfg.SeedStaticContent {
		if err := checkSeed(ctx, repo, log); err != nil {
			log.Fatal("failed to check seed", logger.Error(err))
		}
	}

	// ------------ Source cache ---------------
	sourceCache, closeCache, err := newSourceCache(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to set up source cache", logger.Error(err))
	}
	defer closeCache()

	// for clear-cache using CLI command
	if len(os.Args) > 1 && os.Args[1] == "clear-cache" {
		if err := sourceCache.Clear(ctx); err != nil {
			log.Fatal("failed to clear source cache", logger.Error(err))
		}
		log.Info("source cache cleared")
		return
	}

	// ------------ Events ---------------
	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(events.NATSConfig{URL: cfg.NATSURL, Subject: cfg.NATSSubject}, log)
		if err != nil {
			log.Fatal("failed to connect to NATS", logger.Error(err))
		}
		publisher = nats
		log.Info("connected to NATS", logger.String("subject", cfg.NATSSubject))
	}
	defer publisher.Close()

	// ------------ Sources ---------------
	client := source.NewHTTPClient(cfg.HTTPTimeout)
	openai := source.NewOpenAI(source.OpenAIConfig{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
	}, client, log)
	news := source.NewNewsAPI(source.NewsAPIConfig{APIKey: cfg.NewsAPI.APIKey, BaseURL: cfg.NewsAPI.BaseURL}, client, log)
	youtube := source.NewYouTube(source.YouTubeConfig{APIKey: cfg.YouTube.APIKey, BaseURL: cfg.YouTube.BaseURL}, client, log)
	firecrawl := source.NewFirecrawl(source.FirecrawlConfig{APIKey: cfg.Firecrawl.APIKey, BaseURL: cfg.Firecrawl.BaseURL}, client, log)

	agg := service.NewAggregator(service.Deps{
		Store:     repo,
		Cache:     sourceCache,
		Generated: openai,
		News:      news,
		Video:     youtube,
		Logger:    log,
	}, service.Options{KeepVideosOnNewsFallback: cfg.KeepVideosOnNewsFallback})

	fn := functions.New(functions.Deps{
		Store:     repo,
		Generated: openai,
		News:      news,
		Video:     youtube,
		Scraper:   firecrawl,
		Publisher: publisher,
		Logger:    log,
	}, functions.Config{DefaultTopics: cfg.RefreshTopics})

	// ------------ Scheduler ---------------
	if cfg.RefreshSchedule != "" {
		sched := scheduler.New(func(ctx context.Context) error {
			_, err := fn.RunFetch(ctx, cfg.RefreshTopics, 0)
			return err
		}, 0, log)
		if err := sched.Start(cfg.RefreshSchedule); err != nil {
			log.Fatal("failed to start scheduler", logger.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			sched.Stop(stopCtx)
		}()
	}

	// ---------------- Server --------------------
	h := handler.NewHandler(agg, map[string]handler.Pinger{
		"database": repo,
		"cache":    sourceCache,
	})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(h, fn.Routes(), 2*cfg.HTTPTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logger.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info("waiting for database", logger.Int("attempt", i+1), logger.Int("max_attempts", 30))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrate(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, repo *repository.Repository, log logger.Logger) error {
	count, err := repo.CountContent(ctx)
	if err != nil {
		return fmt.Errorf("check content count: %w", err)
	}
	if count > 0 {
		log.Info("database already seeded, skipping", logger.Int("rows", count))
		return nil
	}
	return seeds.Setup(ctx, repo, log)
}

// newSourceCache connects to Redis when url is set and falls back to an
// in-process cache otherwise.
func newSourceCache(ctx context.Context, url string, log logger.Logger) (cache.SourceCache, func(), error) {
	if url == "" {
		log.Info("REDIS_URL not set, using in-memory source cache")
		return cache.NewMemory(), func() {}, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	c := cache.NewCache(client)
	if err := c.Ping(ctx); err != nil {
		log.Warn("redis unreachable at startup, cache reads will fail until it recovers", logger.Error(err))
	} else {
		log.Info("connected to Redis")
	}
	return c, func() { client.Close() }, nil
}
