package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/soban-iftikhar/BuzzNews/internal/config"
	pgRepo "github.com/soban-iftikhar/BuzzNews/internal/infra/adapter/persistence/postgres"
	"github.com/soban-iftikhar/BuzzNews/internal/infra/db"
	"github.com/soban-iftikhar/BuzzNews/internal/infra/newsapi"
	"github.com/soban-iftikhar/BuzzNews/internal/observability/tracing"

	artUC "github.com/soban-iftikhar/BuzzNews/internal/usecase/article"
	collUC "github.com/soban-iftikhar/BuzzNews/internal/usecase/collection"
	feedUC "github.com/soban-iftikhar/BuzzNews/internal/usecase/feed"

	hhttp "github.com/soban-iftikhar/BuzzNews/internal/handler/http"
	harticle "github.com/soban-iftikhar/BuzzNews/internal/handler/http/article"
	hauth "github.com/soban-iftikhar/BuzzNews/internal/handler/http/auth"
	hcollection "github.com/soban-iftikhar/BuzzNews/internal/handler/http/collection"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/middleware"
	hnews "github.com/soban-iftikhar/BuzzNews/internal/handler/http/news"
	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/requestid"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

func main() {
	logger := initLogger()

	secret, err := config.LoadJWTSecret()
	if err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	newsClient := initNewsClient(logger)

	handler := setupServer(logger, database, secret, newsClient, getVersion())
	runServer(logger, handler, getVersion())
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

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initNewsClient builds the NewsAPI client from environment configuration.
func initNewsClient(logger *slog.Logger) *newsapi.Client {
	cfg, err := newsapi.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load news provider configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return newsapi.NewClient(cfg)
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, services and routes into the root handler.
func setupServer(logger *slog.Logger, database *sql.DB, secret []byte, newsClient *newsapi.Client, version string) http.Handler {
	artRepo := pgRepo.NewArticleRepo(database)
	userRepo := pgRepo.NewUserRepo(database)
	favRepo := pgRepo.NewFavoriteRepo(database)
	watchRepo := pgRepo.NewWatchLaterRepo(database)

	authSvc := authservice.NewService(userRepo, secret)
	feedSvc := feedUC.NewService(newsClient, artRepo)
	articleSvc := &artUC.Service{Store: artRepo}
	favoritesSvc := collUC.NewFavoritesService(favRepo, artRepo)
	watchLaterSvc := collUC.NewWatchLaterService(watchRepo, artRepo)

	// Auth endpoints get a tighter per-IP limit than the rest of the API.
	authLimiter := middleware.NewIPRateLimiter(
		config.GetEnvInt("RATELIMIT_AUTH_PER_MINUTE", 5),
		config.GetEnvInt("RATELIMIT_AUTH_BURST", 5),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /health", hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hauth.Register(mux, authSvc, authLimiter)
	hnews.Register(mux, feedSvc)
	harticle.Register(mux, articleSvc, hauth.RequireAdmin(authSvc))
	hcollection.Register(mux, "/api/favorites", "Removed from favorites",
		favoritesSvc, hauth.RequireUser(authSvc))
	hcollection.Register(mux, "/api/watchlater", "Removed from watch later",
		watchLaterSvc, hauth.RequireUser(authSvc))

	return applyMiddleware(logger, mux)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Recovery → Logging → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	// Apply in reverse order (innermost to outermost).
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)
	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("SERVER_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
