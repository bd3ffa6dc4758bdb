package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"minestake-backend/internal/config"
	"minestake-backend/internal/handlers"
	"minestake-backend/internal/logging"
	"minestake-backend/internal/models"
	"minestake-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer closeStore()

	persister := services.NewPersister(store, logger.WithField("component", "persister"), cfg.WriteTimeout)
	defer persister.Close()

	ctx := context.Background()
	scores := services.NewScoreTracker(ctx, store, persister, cfg.HighScoreKey, logger.WithField("component", "scores"))
	leaderboard := services.NewLeaderboardStore(ctx, store, persister, services.LeaderboardOptions{
		Key:        cfg.LeaderboardKey,
		Limit:      cfg.LeaderboardSize,
		DateLayout: cfg.DateLayout,
	}, logger.WithField("component", "leaderboard"))

	gameEngine := services.NewGameEngine(
		services.NewGridGenerator(cfg.RandomSeed),
		scores,
		leaderboard,
		models.GameParams{Rows: cfg.BoardRows, Cols: cfg.BoardCols, Penalties: cfg.BoardPenalties},
		logger.WithField("component", "engine"),
	)

	wsHandler := handlers.NewWebSocketHandler(gameEngine, logger.WithField("component", "ws"))
	defer wsHandler.Close()
	gameEngine.SetBroadcaster(wsHandler)

	jwtService := services.NewJWTService(cfg)
	gameHandler := handlers.NewGameHandler(gameEngine, jwtService, logger.WithField("component", "http"))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(gameHandler, wsHandler, jwtService, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"store": cfg.StoreDriver,
		}).Info("Server starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	logger.Info("Server stopped")
}

func openStore(cfg *config.Config) (services.KeyValueStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		store, err := services.NewRedisStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StoreSQLite:
		store, err := services.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return services.NewMemoryStore(), func() {}, nil
	}
}
