package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/kraftflix/movie-api/internal/api"
	"github.com/kraftflix/movie-api/internal/api/handler"
	"github.com/kraftflix/movie-api/internal/core/service"
	"github.com/kraftflix/movie-api/internal/infrastructure/db/mongo"
	"github.com/kraftflix/movie-api/internal/infrastructure/db/redis"
	"github.com/kraftflix/movie-api/internal/infrastructure/queue"
	"github.com/kraftflix/movie-api/internal/pkg/config"
	"github.com/kraftflix/movie-api/pkg/logger"
)

func serveCmd() *cli.Command {
	var bind string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Listen address; overrides PORT",
				Destination: &bind,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if bind == "" {
				bind = net.JoinHostPort("", cfg.Port)
			}
			log := logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.LogPretty,
				Service: "movie-api",
			})
			return run(c.Context, cfg, bind, log)
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", c.String("env-file"), err)
	}
	return config.Load(c.Context)
}

func run(ctx context.Context, cfg *config.Config, bind string, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
		AppName:  "movie-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	users := mongo.NewUserRepository(db)
	movies := mongo.NewMovieRepository(db)
	health := map[string]handler.Pinger{"mongodb": mongo.Pinger{Client: client}}

	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens, err := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	var authOpts []service.AuthOption
	if cfg.ThrottleEnabled() {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		throttle := redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)
		authOpts = append(authOpts, service.WithLoginThrottle(throttle))
		health["redis"] = redis.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Int("max_failures", cfg.Auth.LoginMaxFailures).Msg("login throttle enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttle disabled")
	}

	if cfg.Audit.Enabled {
		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, mongo.NewAuthEventRepository(db), log)
		dispatcher.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := dispatcher.Stop(stopCtx); err != nil {
				log.Warn().Err(err).Msg("audit dispatcher did not drain")
			}
		}()
		authOpts = append(authOpts, service.WithAuditSink(dispatcher))
	}

	e := api.NewRouter(api.Dependencies{
		Auth:           service.NewAuthService(users, hasher, tokens, log, authOpts...),
		Users:          service.NewUserService(users, movies, hasher, log),
		Movies:         service.NewMovieService(movies),
		Health:         health,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", bind).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(bind); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
