package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/maxolivera/gophis-posts/internal/api"
	"github.com/maxolivera/gophis-posts/internal/auth"
	"github.com/maxolivera/gophis-posts/internal/cache"
	"github.com/maxolivera/gophis-posts/internal/env"
	"github.com/maxolivera/gophis-posts/internal/metrics"
	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/service"
	"github.com/maxolivera/gophis-posts/internal/storage"
	"github.com/maxolivera/gophis-posts/internal/storage/memory"
	"github.com/maxolivera/gophis-posts/internal/storage/postgres"
	"github.com/maxolivera/gophis-posts/internal/validation"
	fixedwindow "github.com/maxolivera/gophis-posts/pkg/fixed-window"
	"github.com/maxolivera/gophis-posts/pkg/ttlcache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const Version = "0.0.1"

//	@title			Gophis Posts API
//	@version		0.0.1
//	@description	Per-user posts behind bearer authentication.

//	@BasePath	/v1

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization

func main() {
	// == ENV VALUES ==
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalln("error loading .env file:", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	// == LOGGER ==
	var zapLogger *zap.Logger
	if cfg.Environment == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalln("could not create logger:", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// == STORAGE ==
	var store *storage.Storage
	switch cfg.Storage {
	case "postgres":
		pool, err := newPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatalw("could not connect to database", "error", err)
		}
		defer pool.Close()
		logger.Infow("database connection pool established")

		if err := postgres.Migrate(ctx, pool); err != nil {
			logger.Fatalw("could not migrate database", "error", err)
		}
		store = postgres.NewPostgresStorage(pool)
	case "memory":
		logger.Warnw("using in-memory storage, data is lost on restart")
		store = memory.NewMemoryStorage()
	default:
		logger.Fatalw("unknown storage", "storage", cfg.Storage)
	}

	// == CACHE ==
	postsCache := ttlcache.New[[]models.Post]()
	if cfg.Cache.ReapInterval > 0 {
		go postsCache.Run(ctx, cfg.Cache.ReapInterval)
	}

	// == METRICS ==
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// == AUTH ==
	token := cfg.Authentication.Token
	authenticator := auth.NewJWTAuthenticator(token.Secret, token.Issuer, token.Issuer, token.ExpirationTime)

	v := validation.New()

	// == APPLICATION ==
	app := &api.Application{
		Config:        cfg,
		Storage:       store,
		Posts:         service.NewPostService(store.Posts, cache.NewTTLStorage(postsCache), v, m, logger),
		Authenticator: authenticator,
		Resolver:      auth.NewResolver(authenticator),
		Validator:     v,
		Metrics:       m,
		Gatherer:      reg,
		Logger:        logger,
	}
	if cfg.RateLimit.Enabled {
		app.RateLimiter = fixedwindow.NewFixedWindow(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	if err := app.Start(ctx); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func loadConfig() (*api.Config, error) {
	addr := env.GetStringOr("ADDR", ":8080")
	environment := env.GetStringOr("ENV", "development")
	storageKind := env.GetStringOr("STORAGE", "postgres")

	secret, err := env.GetString("SECRET_KEY")
	if err != nil {
		return nil, err
	}

	expireMinutes, err := env.GetIntOr("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	if err != nil {
		return nil, err
	}

	reapInterval, err := env.GetDurationOr("CACHE_REAP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	rateRequests, err := env.GetIntOr("RATE_LIMIT_REQUESTS", 20)
	if err != nil {
		return nil, err
	}

	rateWindow, err := env.GetDurationOr("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &api.Config{
		Addr:        addr,
		Environment: environment,
		Version:     Version,
		Storage:     storageKind,
		Authentication: api.AuthConfig{
			Token: api.TokenConfig{
				Secret:         secret,
				Issuer:         env.GetStringOr("TOKEN_ISSUER", "gophis-posts"),
				ExpirationTime: time.Duration(expireMinutes) * time.Minute,
			},
		},
		Cache: api.CacheConfig{
			ReapInterval: reapInterval,
		},
		RateLimit: api.RateLimitConfig{
			Enabled:  rateRequests > 0,
			Requests: rateRequests,
			Window:   rateWindow,
		},
	}

	if storageKind != "postgres" {
		return cfg, nil
	}

	dbUrl, err := env.GetString("DB_URL")
	if err != nil {
		return nil, err
	}

	maxOpenConns, err := env.GetIntOr("DB_MAX_OPEN_CONNS", 30)
	if err != nil {
		return nil, err
	}

	maxIdleConns, err := env.GetIntOr("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}

	// MaxIdleTime represents minutes
	maxIdleTime, err := env.GetIntOr("DB_MAX_IDLE_TIME", 15)
	if err != nil {
		return nil, err
	}

	cfg.Database = &api.DBConfig{
		Addr:               dbUrl,
		MaxOpenConnections: maxOpenConns,
		MaxIdleConnections: maxIdleConns,
		MaxIdleTime:        time.Duration(maxIdleTime) * time.Minute,
	}
	return cfg, nil
}

func newPool(ctx context.Context, cfg *api.DBConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dbConfig, err := pgxpool.ParseConfig(cfg.Addr)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = int32(cfg.MaxOpenConnections)
	dbConfig.MinConns = int32(cfg.MaxIdleConnections)
	dbConfig.MaxConnIdleTime = cfg.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
