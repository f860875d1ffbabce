// Package main is the entrypoint for the developer portal API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/devportal/devportal/internal/auth"
	"github.com/devportal/devportal/internal/cache"
	"github.com/devportal/devportal/internal/config"
	"github.com/devportal/devportal/internal/graphql"
	"github.com/devportal/devportal/internal/handler"
	"github.com/devportal/devportal/internal/metrics"
	"github.com/devportal/devportal/internal/nativeapp"
	"github.com/devportal/devportal/internal/repository"
	"github.com/devportal/devportal/internal/server"
	"github.com/devportal/devportal/internal/service"
	"github.com/devportal/devportal/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)
	recorder := metrics.NewPrometheus()

	trustedProxies, err := cfg.GetTrustedProxies()
	if err != nil {
		return err
	}

	backend, err := openBackend(ctx, cfg, recorder, logger)
	if err != nil {
		return err
	}
	defer backend.close()

	deps := routerDeps{
		cfg:         cfg,
		logger:      logger,
		recorder:    recorder,
		metrics:     handler.NewMetricsHandler(recorder.Handler()),
		backendName: cfg.StoreBackend,
		backend:     backend.health,

		trustedProxies: trustedProxies,
	}

	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return errors.New("redis unavailable")
		}
		logger.Info("connected to Redis")
		deps.cacheHealth = cacheClient
		deps.limiter = cacheClient
	} else {
		logger.Warn("REDIS_URL not set; public app caching and rate limiting disabled")
	}

	registry, err := nativeapp.Load(cfg.NativeAppsFile, cfg.AppEnv)
	if err != nil {
		return err
	}
	logger.Info("native apps loaded", "env", cfg.AppEnv, "count", registry.Len())

	var appCache service.PublicAppCache
	if cacheClient != nil {
		appCache = cacheClient
	}

	deps.oidc = service.NewOIDCService(backend.store, recorder)
	deps.publicApps = service.NewPublicAppService(backend.store, appCache, registry, service.PublicAppConfig{
		CDNURL:   cfg.CDNURL,
		CacheTTL: cfg.PublicAppCacheTTL,
	}, recorder, logger)

	if cfg.SessionsEnabled() {
		deps.teams = service.NewTeamService(backend.store, recorder, logger)
		deps.sessions = auth.NewSessionVerifier(cfg.SessionJWTSecret, cfg.SessionJWTIssuer)
	} else {
		logger.Warn("SESSION_JWT_SECRET not set; team routes disabled")
	}

	srv := server.New(newRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"backend", cfg.StoreBackend,
		"cdn_url", cfg.CDNURL,
	)

	return srv.Run(ctx)
}

// openedBackend is the store chosen by STORE_BACKEND with its health probe.
type openedBackend struct {
	store  store.Store
	health handler.HealthChecker
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config, recorder metrics.Recorder, logger *slog.Logger) (*openedBackend, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL, recorder)
		if err != nil {
			logger.Error("failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			return nil, errors.New("database unavailable")
		}
		logger.Info("connected to database")
		return &openedBackend{store: repo, health: repo, close: repo.Close}, nil
	default:
		client := graphql.New(cfg.GraphQLURL, cfg.GraphQLAdminSecret, cfg.GraphQLTimeout, recorder)
		logger.Info("using graphql backend", "graphql_url", redactURL(cfg.GraphQLURL))
		return &openedBackend{store: client, health: client, close: func() {}}, nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "devportal-api")
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
