package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/config"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/events"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/match"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/rendezvous"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-arbiter/transport/rest"
	"github.com/rocketscienceinc/tictactoe-arbiter/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the arbiter service until ctx is done or a termination signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	hub := events.NewHub()
	sinks := []events.Sink{hub}

	var matchRepo repository.MatchRepository
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage.Connection, conf.Redis.ResultTTL)
		sinks = append(sinks, redis.NewPublisher(redisStorage.Connection, conf.Redis.Channel))
	} else {
		log.Warn("redis disabled, match results are not archived")
	}

	dispatcher := events.NewDispatcher(logger, conf.Events.QueueSize, sinks...)
	go dispatcher.Run(ctx)

	registry := rendezvous.New(logger, dispatcher)
	engine := match.NewEngine(logger, bot.NewClient(logger, nil, conf.Bot.MovePath), registry, dispatcher, EngineConfig(conf))
	matchManager := usecase.NewMatchManager(logger, engine, matchRepo, registry, MatchDefaults(conf))

	router := rest.NewRouter(logger, rest.NewHandlers(logger, matchManager), websocket.New(logger, hub))

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// PlayMatch - runs one bot match without the service around it, logging every event.
func PlayMatch(ctx context.Context, logger *slog.Logger, conf *config.Config, players []entity.Player, opts entity.MatchOptions) (*entity.MatchResult, error) {
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	dispatcher := events.NewDispatcher(logger, conf.Events.QueueSize, events.NewLogSink(logger, slog.LevelInfo))

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		dispatcher.Run(dispatchCtx)
	}()

	defer func() {
		stopDispatch()
		<-dispatched
	}()

	registry := rendezvous.New(logger, dispatcher)
	engine := match.NewEngine(logger, bot.NewClient(logger, nil, conf.Bot.MovePath), registry, dispatcher, EngineConfig(conf))

	result, err := engine.StartMatch(ctx, players, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to play match: %w", err)
	}

	return result, nil
}

func EngineConfig(conf *config.Config) match.Config {
	return match.Config{
		DefaultProtocol: conf.Bot.DefaultProtocol,
		DefaultHost:     conf.Bot.DefaultHost,
		MaxNoTieTurns:   conf.Match.MaxNoTieTurns,
	}
}

func MatchDefaults(conf *config.Config) entity.MatchOptions {
	return entity.MatchOptions{
		TimeoutMs: conf.Match.TimeoutMs,
		BoardSize: conf.Match.BoardSize,
		NoTie:     conf.Match.NoTie,
		MaxMarks:  conf.Match.MaxMarks,
	}
}
