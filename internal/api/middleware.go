package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/maxolivera/gophis-posts/internal/auth"
	"github.com/maxolivera/gophis-posts/internal/models"
)

type contextKey string

const (
	contextKeyIdentity = contextKey("identity")
)

func (app *Application) middlewareAuthToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			err := errors.New("authorization header is missing")
			app.Metrics.AuthFailures.Inc()
			app.unauthorizedErrorResponse(w, r, err, "")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			err := errors.New("authorization header is malformed")
			app.Metrics.AuthFailures.Inc()
			app.unauthorizedErrorResponse(w, r, err, "")
			return
		}

		identity, err := app.Resolver.Resolve(r.Context(), token, app.Storage.Users)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				app.Metrics.AuthFailures.Inc()
				app.unauthorizedErrorResponse(w, r, err, "")
				return
			}
			app.respondWithError(w, r, http.StatusInternalServerError, err, "")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyIdentity, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *Application) middlewareRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.Config.RateLimit.Enabled || app.RateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		if allow, retryAfter := app.RateLimiter.Allow(ip); !allow {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			err := fmt.Errorf("rate limit exceeded for %s", ip)
			app.respondWithError(w, r, http.StatusTooManyRequests, err, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port, RealIP already replaced RemoteAddr when proxy
// headers are present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func getIdentity(r *http.Request) models.Identity {
	return r.Context().Value(contextKeyIdentity).(models.Identity)
}
