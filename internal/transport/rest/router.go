package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type panicReporter interface {
	ReportPanic(ctx context.Context, recovered any)
}

// RouterDeps holds everything the HTTP surface is built from. Metrics and
// MetricsPage may be nil.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	RateLimit   config.RateLimitConfig
	TrustProxy  bool
	Limiter     *middleware.RateLimiter
	Tokens      tokenValidator
	Panics      panicReporter
	Metrics     middleware.HTTPRecorder
	MetricsPage http.Handler

	Auth   *AuthHandler
	Verify *VerifyHandler
	Scans  *ScansHandler
	Chat   *ChatHandler
	Health *HealthHandler
}

// NewRouter wires handlers and middleware into the HTTP API.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		chain := append([]middleware.Middleware{middleware.Instrument(d.Metrics, pattern)}, mws...)
		mux.Handle(pattern, middleware.Chain(chain...)(h))
	}

	limit := func(group string, perMinute int) middleware.Middleware {
		if !d.RateLimit.Enabled || d.Limiter == nil {
			return nil
		}
		return d.Limiter.Limit(group, perMinute)
	}
	authLimit := limit("auth", d.RateLimit.AuthPerMinute)
	verifyLimit := limit("verify", d.RateLimit.VerifyPerMinute)
	authenticated := []middleware.Middleware{middleware.Auth(d.Tokens), middleware.RequireUser}

	route("POST /auth/register", d.Auth.Register, authLimit)
	route("POST /auth/login", d.Auth.Login, authLimit)
	route("POST /auth/refresh", d.Auth.Refresh, authLimit)
	route("POST /auth/logout", d.Auth.Logout, authenticated...)

	route("POST /api/verify", d.Verify.Verify, append(authenticated, verifyLimit)...)
	route("GET /api/scans", d.Scans.List, authenticated...)
	route("POST /api/chat", d.Chat.Chat, append(authenticated, verifyLimit)...)

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.MetricsPage != nil {
		mux.Handle("GET /metrics", d.MetricsPage)
	}

	return middleware.Chain(
		middleware.Recovery(d.Logger, d.Panics),
		middleware.RequestID(),
		middleware.ClientIP(d.TrustProxy),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
