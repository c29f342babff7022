package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/ndc"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/scan"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/cache"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/dailymed"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/ndcdataset"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/drugverify-backend/internal/adapter/provider/openfda"
	"github.com/heartmarshall/drugverify-backend/internal/auth"
	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/internal/metrics"
	authsvc "github.com/heartmarshall/drugverify-backend/internal/service/auth"
	"github.com/heartmarshall/drugverify-backend/internal/service/chat"
	"github.com/heartmarshall/drugverify-backend/internal/service/evidence"
	"github.com/heartmarshall/drugverify-backend/internal/service/history"
	"github.com/heartmarshall/drugverify-backend/internal/service/verification"
	"github.com/heartmarshall/drugverify-backend/internal/telemetry"
	"github.com/heartmarshall/drugverify-backend/internal/transport/middleware"
	"github.com/heartmarshall/drugverify-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, assembles services and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	reporter, err := telemetry.New(cfg.Telemetry, Version, logger)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer reporter.Flush(2 * time.Second)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, pool, m, registry, reporter, limiter)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// newHandler assembles repositories, providers, services and the router.
func newHandler(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	reporter *telemetry.Reporter,
	limiter *middleware.RateLimiter,
) http.Handler {
	// Repositories
	txm := postgres.NewTxManager(pool)
	users := user.New(pool)
	tokens := token.New(pool)
	scans := scan.New(pool)
	products := ndc.New(pool)

	// Lookups
	sources := lookupSources(cfg.Lookup, logger, products, m)
	gatherer := evidence.NewGatherer(logger, m, sources...)

	// Models
	models, attempts := hostedModels(cfg.LLM, logger)
	if len(models) == 0 {
		logger.Warn("no model configured; every verification will be a fail-safe verdict")
	}

	// Services
	jwtManager := auth.NewJWTManager(cfg.Auth)
	authService := authsvc.NewService(logger, users, tokens, txm, jwtManager,
		auth.NewPasswordHasher(cfg.Auth.PasswordHashCost), cfg.Auth)
	historyService := history.NewService(logger, scans, txm)
	allowList := verification.NewAllowList(cfg.Verification.AllowList())
	verificationService := verification.NewService(logger, gatherer, attempts, allowList, m, reporter)
	logger.Info("verification configured",
		slog.Any("models", modelNames(models)),
		slog.Any("lookup_sources", gatherer.Sources()),
		slog.Int("allow_list_entries", allowList.Len()),
	)
	chatModels := make([]chat.Model, 0, len(models))
	for _, mdl := range models {
		chatModels = append(chatModels, mdl)
	}
	chatService := chat.NewService(logger, gatherer, chatModels, m)

	deps := rest.RouterDeps{
		Logger:     logger,
		CORS:       cfg.CORS,
		RateLimit:  cfg.RateLimit,
		TrustProxy: cfg.Server.TrustProxy,
		Limiter:    limiter,
		Tokens:     authService,
		Panics:     reporter,
		Auth:       rest.NewAuthHandler(authService, logger),
		Verify:     rest.NewVerifyHandler(verificationService, historyService, logger),
		Scans:      rest.NewScansHandler(historyService, logger),
		Chat:       rest.NewChatHandler(chatService, logger),
		Health:     rest.NewHealthHandler(pool, Version, modelNames(models), gatherer.Sources()),
	}
	if cfg.Telemetry.MetricsEnabled {
		deps.Metrics = m
		deps.MetricsPage = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	return rest.NewRouter(deps)
}

// hostedModels returns the configured models in fallback order. The primary
// model is given lookup evidence; the secondary answers from its own knowledge.
func hostedModels(cfg config.LLMConfig, logger *slog.Logger) ([]verification.Model, []verification.Attempt) {
	var (
		models   []verification.Model
		attempts []verification.Attempt
	)
	if cfg.HasAnthropic() {
		c := anthropic.New(cfg, logger)
		models = append(models, c)
		attempts = append(attempts, verification.Attempt{Model: c, WithEvidence: true})
	}
	if cfg.HasOpenAI() {
		c := openai.New(cfg, logger)
		models = append(models, c)
		attempts = append(attempts, verification.Attempt{Model: c, WithEvidence: false})
	}
	return models, attempts
}

// lookupSources returns the evidence sources in report order. Remote sources
// are cached; the internal dataset is read directly.
func lookupSources(cfg config.LookupConfig, logger *slog.Logger, products *ndc.Repo, m *metrics.Metrics) []evidence.Source {
	fda := openfda.NewProvider(cfg, logger)

	sources := []evidence.Source{
		ndcdataset.NewProvider(products, logger),
		cache.Wrap(fda, cfg.CacheTTL, m),
	}
	if cfg.RecallsEnabled {
		sources = append(sources, cache.Wrap(fda.Recalls(), cfg.CacheTTL, m))
	}
	if cfg.DailyMedEnabled {
		sources = append(sources, cache.Wrap(dailymed.NewProvider(cfg, logger), cfg.CacheTTL, m))
	}
	return sources
}

func modelNames(models []verification.Model) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name())
	}
	return names
}
