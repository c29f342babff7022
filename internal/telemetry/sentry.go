// Package telemetry reports unexpected failures to Sentry.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/heartmarshall/drugverify-backend/internal/config"
	"github.com/heartmarshall/drugverify-backend/pkg/ctxutil"
)

// Reporter sends errors and recovered panics to Sentry. A Reporter without a
// client only logs, so a nil or disabled Reporter is always safe to call.
type Reporter struct {
	log *slog.Logger
	hub *sentry.Hub
}

// New creates a Reporter. An empty DSN yields a disabled Reporter.
func New(cfg config.TelemetryConfig, release string, logger *slog.Logger) (*Reporter, error) {
	logger = logger.With("component", "telemetry")
	if cfg.SentryDSN == "" {
		logger.Info("sentry disabled: no DSN configured")
		return &Reporter{log: logger}, nil
	}

	client, err := sentry.NewClient(clientOptions(cfg, release))
	if err != nil {
		return nil, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return NewWithClient(client, logger), nil
}

// NewWithClient wraps an existing Sentry client.
func NewWithClient(client *sentry.Client, logger *slog.Logger) *Reporter {
	return &Reporter{log: logger, hub: sentry.NewHub(client, sentry.NewScope())}
}

func clientOptions(cfg config.TelemetryConfig, release string) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		SampleRate:       cfg.SentrySampleRate,
		Release:          "drugverify@" + release,
		AttachStacktrace: true,
		BeforeSend:       scrub,
	}
}

// scrub drops host and user identity from outgoing events.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.User = sentry.User{}
	event.ServerName = ""
	if event.Request != nil {
		event.Request.Cookies = ""
		delete(event.Request.Headers, "Authorization")
		delete(event.Request.Headers, "Cookie")
	}
	return event
}

// Enabled reports whether events leave the process.
func (r *Reporter) Enabled() bool {
	return r != nil && r.hub != nil
}

// Report captures err tagged with the request ID from ctx.
func (r *Reporter) Report(ctx context.Context, err error) {
	if err == nil || !r.Enabled() {
		return
	}

	hub := r.requestHub(ctx)
	hub.Scope().SetContext("error", map[string]any{"type": fmt.Sprintf("%T", err)})
	hub.CaptureException(err)
}

// ReportPanic captures a recovered panic value.
func (r *Reporter) ReportPanic(ctx context.Context, recovered any) {
	if recovered == nil || !r.Enabled() {
		return
	}

	hub := r.requestHub(ctx)
	hub.Scope().SetLevel(sentry.LevelFatal)
	hub.RecoverWithContext(ctx, recovered)
}

// requestHub returns a clone of the root hub for one event. Concurrent
// requests must not share a scope stack.
func (r *Reporter) requestHub(ctx context.Context) *sentry.Hub {
	hub := r.hub.Clone()
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		hub.Scope().SetTag("request_id", id)
	}
	return hub
}

// Flush waits for queued events to be delivered.
func (r *Reporter) Flush(timeout time.Duration) {
	if !r.Enabled() {
		return
	}
	if !r.hub.Flush(timeout) {
		r.log.Warn("sentry flush timed out", slog.Duration("timeout", timeout))
	}
}
