package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxolivera/gophis-posts/internal/auth"
	"github.com/maxolivera/gophis-posts/internal/metrics"
	"github.com/maxolivera/gophis-posts/internal/service"
	"github.com/maxolivera/gophis-posts/internal/storage"
	"github.com/maxolivera/gophis-posts/internal/validation"
	fixedwindow "github.com/maxolivera/gophis-posts/pkg/fixed-window"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/maxolivera/gophis-posts/docs"
)

type Application struct {
	Config        *Config
	Storage       *storage.Storage
	Posts         *service.PostService
	Authenticator *auth.JWTAuthenticator
	Resolver      *auth.Resolver
	Validator     *validation.Validator
	RateLimiter   *fixedwindow.FixedWindow
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Logger        *zap.SugaredLogger
}

type Config struct {
	Addr           string
	Environment    string
	Version        string
	Storage        string
	Database       *DBConfig
	Authentication AuthConfig
	Cache          CacheConfig
	RateLimit      RateLimitConfig
}

type DBConfig struct {
	Addr               string
	MaxOpenConnections int
	MaxIdleConnections int
	MaxIdleTime        time.Duration
}

type AuthConfig struct {
	Token TokenConfig
}

type TokenConfig struct {
	Secret         string
	Issuer         string
	ExpirationTime time.Duration
}

type CacheConfig struct {
	// Zero means expired entries are only dropped when read
	ReapInterval time.Duration
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// Start serves until ctx is done, then drains in-flight requests.
func (app *Application) Start(ctx context.Context) error {
	mux := app.GetHandlers()

	srv := &http.Server{
		Addr:         app.Config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Infow("starting to listen", "addr", app.Config.Addr, "env", app.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *Application) GetHandlers() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// timeout on request context
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.handlerHealthz)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/v1/swagger/doc.json")))

		r.Route("/auth", func(r chi.Router) {
			r.Use(app.middlewareRateLimit)
			r.Post("/signup", app.handlerCreateUser)
			r.Post("/login", app.handlerCreateToken)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(app.middlewareAuthToken)
			r.Get("/", app.handlerListPosts)
			r.Post("/", app.handlerCreatePost)
			r.Delete("/{postID}", app.handlerDeletePost)
		})
	})

	if app.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
