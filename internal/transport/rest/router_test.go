package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/metrics"
	"github.com/heartmarshall/drugverify-backend/internal/service/auth"
	"github.com/heartmarshall/drugverify-backend/internal/service/chat"
	"github.com/heartmarshall/drugverify-backend/internal/service/history"
	"github.com/heartmarshall/drugverify-backend/internal/transport/middleware"
)

const goodToken = "good-token"

type staticTokens struct{ userID uuid.UUID }

func (s staticTokens) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	if token != goodToken {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return s.userID, nil
}

func newTestRouter(t *testing.T, rl config.RateLimitConfig, rec middleware.HTTPRecorder) http.Handler {
	t.Helper()
	logger := discardLogger()

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	authSvc := &fakeAuthService{
		login: func(context.Context, auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
		logout: func(context.Context) error { return nil },
	}

	return NewRouter(RouterDeps{
		Logger:    logger,
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST", AllowedHeaders: "Authorization,Content-Type"},
		RateLimit: rl,
		Limiter:   limiter,
		Tokens:    staticTokens{userID: uuid.New()},
		Metrics:   rec,
		Auth:      NewAuthHandler(authSvc, logger),
		Verify:    NewVerifyHandler(&fakeVerifier{}, &fakeHistory{}, logger),
		Scans:     NewScansHandler(&fakeHistory{page: &history.ScanPage{}}, logger),
		Chat:      NewChatHandler(&fakeChat{reply: &chat.Reply{Response: "ok"}}, logger),
		Health:    NewHealthHandler(&dbPingerMock{}, "test", testModels, testSources),
	})
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, config.RateLimitConfig{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{"scans anonymous", http.MethodGet, "/api/scans", "", "", http.StatusUnauthorized},
		{"scans bad token", http.MethodGet, "/api/scans", "", "nope", http.StatusUnauthorized},
		{"scans ok", http.MethodGet, "/api/scans", "", goodToken, http.StatusOK},
		{"verify anonymous", http.MethodPost, "/api/verify", `{"ndc":"1"}`, "", http.StatusUnauthorized},
		{"verify ok", http.MethodPost, "/api/verify", `{"ndc":"0093-4155"}`, goodToken, http.StatusOK},
		{"chat anonymous", http.MethodPost, "/api/chat", `{"message":"hi"}`, "", http.StatusUnauthorized},
		{"chat ok", http.MethodPost, "/api/chat", `{"message":"hi"}`, goodToken, http.StatusOK},
		{"logout anonymous", http.MethodPost, "/auth/logout", "", "", http.StatusUnauthorized},
		{"login public", http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"x"}`, "", http.StatusUnauthorized},
		{"live public", http.MethodGet, "/live", "", "", http.StatusOK},
		{"wrong method", http.MethodGet, "/api/verify", "", goodToken, http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("%s %s: expected %d, got %d (%s)", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("every response should carry a request ID")
			}
		})
	}
}

func TestRouter_AuthRateLimit(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, config.RateLimitConfig{Enabled: true, AuthPerMinute: 2, VerifyPerMinute: 100}, nil)

	var last int
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third login expected 429, got %d", last)
	}

	// The verify budget is separate.
	req := httptest.NewRequest(http.MethodPost, "/api/verify", strings.NewReader(`{"ndc":"1"}`))
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("Authorization", "Bearer "+goodToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify expected 200, got %d", rec.Code)
	}
}

func TestRouter_RecordsRouteMetrics(t *testing.T) {
	t.Parallel()

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics.New: %v", err)
	}
	router := newTestRouter(t, config.RateLimitConfig{}, m)

	req := httptest.NewRequest(http.MethodGet, "/api/scans", nil)
	req.Header.Set("Authorization", "Bearer "+goodToken)
	router.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET /api/scans", http.MethodGet, "200"))
	if got != 1 {
		t.Errorf("request counter = %v, want 1", got)
	}
}
