// The worker periodically warms the combined feed: it fetches each configured
// topic from the news provider so fresh articles land in the store before
// readers ask for them, and it keeps the featured article current.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/soban-iftikhar/BuzzNews/internal/config"
	pgRepo "github.com/soban-iftikhar/BuzzNews/internal/infra/adapter/persistence/postgres"
	"github.com/soban-iftikhar/BuzzNews/internal/infra/db"
	"github.com/soban-iftikhar/BuzzNews/internal/infra/newsapi"
	"github.com/soban-iftikhar/BuzzNews/internal/observability/metrics"
	feedUC "github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"
)

func main() {
	logger := initLogger()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerConfig, err := config.LoadWorkerConfig()
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Any("topics", workerConfig.Topics),
		slog.Int("max_concurrent", workerConfig.MaxConcurrent),
		slog.Duration("warm_timeout", workerConfig.WarmTimeout))

	svc := setupFeedService(logger, database)

	startCronWorker(logger, svc, workerConfig)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for the API's
// migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// setupFeedService builds the feed service backed by the news provider and
// the article store.
func setupFeedService(logger *slog.Logger, database *sql.DB) *feedUC.Service {
	cfg, err := newsapi.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load news provider configuration", slog.Any("error", err))
		os.Exit(1)
	}
	client := newsapi.NewClient(cfg)
	return feedUC.NewService(client, pgRepo.NewArticleRepo(database))
}

// startCronWorker starts the cron scheduler and blocks until a shutdown signal.
func startCronWorker(logger *slog.Logger, svc *feedUC.Service, cfg *config.WorkerConfig) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runWarmJob(logger, svc, cfg)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

// runWarmJob refreshes every configured topic plus the featured article,
// bounded by the configured parallelism and timeout. One topic failing does
// not abort the others; the first error is logged after the run.
func runWarmJob(logger *slog.Logger, svc *feedUC.Service, cfg *config.WorkerConfig) {
	start := time.Now()
	logger.Info("feed warm started", slog.Any("topics", cfg.Topics))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WarmTimeout)
	defer cancel()

	var errs []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrent)
	for _, topic := range cfg.Topics {
		g.Go(func() error {
			result, err := svc.GetFeed(gctx, topic, cfg.ArticlesPerRun, 0)
			if err != nil {
				logger.Error("topic warm failed",
					slog.String("topic", topic),
					slog.Any("error", err))
				return err
			}
			logger.Info("topic warmed",
				slog.String("topic", topic),
				slog.Int("inserted", result.Inserted),
				slog.Int("considered", result.TotalConsidered))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	if cfg.WarmFeatured {
		if _, err := svc.GetFeatured(ctx); err != nil && !errors.Is(err, feedUC.ErrNoFeaturedAvailable) {
			logger.Error("featured warm failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	status := "success"
	if len(errs) > 0 {
		status = "partial_failure"
	}
	metrics.RecordFeedWarmRun(status, time.Since(start))
	logger.Info("feed warm finished",
		slog.String("status", status),
		slog.Duration("duration", time.Since(start)))
}
