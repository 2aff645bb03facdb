package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-referee/internal/config"
	"github.com/rocketscienceinc/tictactoe-referee/internal/repository"
	"github.com/rocketscienceinc/tictactoe-referee/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-referee/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-referee/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-referee/transport/rest"
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

	var (
		gameRepo repository.GameRepository
		signRepo repository.SignRegistry
	)

	switch conf.Storage.Type {
	case config.StorageRedis:
		client, err := storage.New(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewRedisGameRepository(client)
		signRepo = repository.NewRedisSignRegistry(client)
	default:
		gameRepo = repository.NewMemoryGameRepository()
		signRepo = repository.NewMemorySignRegistry()
	}

	log.Info("Storage backend selected", "type", conf.Storage.Type)

	engine := tictactoe.NewEngine(nil)
	referee := usecase.NewReferee(logger, gameRepo, signRepo, engine)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	server := rest.New(logger, conf.HTTPPort, referee)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
