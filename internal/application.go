package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/scrabble-backend/internal/config"
	"github.com/rocketscienceinc/scrabble-backend/internal/dictionary"
	"github.com/rocketscienceinc/scrabble-backend/internal/repository"
	"github.com/rocketscienceinc/scrabble-backend/internal/repository/storage"
	"github.com/rocketscienceinc/scrabble-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/scrabble-backend/internal/room"
	"github.com/rocketscienceinc/scrabble-backend/internal/service"
	"github.com/rocketscienceinc/scrabble-backend/transport/rest"
	"github.com/rocketscienceinc/scrabble-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Connection.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Connection.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	wordCache := dictionary.NewRedisCache(redisStorage.Connection, 24*time.Hour)
	wordList, err := dictionary.Load(logger, conf.WordListPath, wordCache)
	if err != nil {
		return fmt.Errorf("could not load word list: %w", err)
	}

	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	authService := service.NewAuthService(userRepo, conf.JWTSecretKey)
	statsService := service.NewStatsService(logger, userRepo)

	roomConf := room.Config{
		PauseBudget:   conf.Game.PauseBudget(),
		PauseInterval: conf.Game.PauseInterval(),
	}
	registry := room.NewRegistry(logger, wordList, statsService, roomConf)

	definer := dictionary.NewDefinitionClient(nil)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		handler := rest.NewHandler(logger, registry, wordList, definer, authService, statsService)
		httpServer := rest.NewServer(logger, handler)
		if httpErr := httpServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		wsServer := websocket.New(logger, registry)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
