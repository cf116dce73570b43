package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/config"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/random"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/repository"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/repository/storage"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/ruleset"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/usecase"
	"github.com/rocketscienceinc/rockpaperscissors-backend/transport/rest"
	"github.com/rocketscienceinc/rockpaperscissors-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	catalog, err := ruleset.Load(ctx, conf.Game.Ruleset, conf.Game.RulesetScript)
	if err != nil {
		return fmt.Errorf("could not load ruleset: %w", err)
	}

	log.Info("Ruleset loaded", "ruleset", conf.Game.Ruleset, "choices", catalog.Len())

	seeds, err := random.FromConfig(conf.Game.Seed)
	if err != nil {
		return fmt.Errorf("could not seed randomizer: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	viewRepo := repository.NewViewRepository(redisStorage, conf.Redis.ViewTTL)
	sessions := usecase.NewSessionFactory(logger, catalog, seeds)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, catalog, viewRepo)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, sessions, viewRepo, conf.AllowedOrigins)
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
