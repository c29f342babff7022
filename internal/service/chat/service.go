// Package chat answers free-form questions about drug authenticity, grounding
// the answer in lookup evidence when the message names a product code.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Model is one hosted language model.
type Model interface {
	Name() string
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

type evidenceGatherer interface {
	Gather(ctx context.Context, code string) domain.Evidence
}

type attemptRecorder interface {
	RecordModelAttempt(provider, result string, d time.Duration)
}

// Service implements the chat assistant.
type Service struct {
	log      *slog.Logger
	evidence evidenceGatherer
	models   []Model
	metrics  attemptRecorder
}

// NewService creates a chat service. Models are tried in order. metrics may be nil.
func NewService(logger *slog.Logger, gatherer evidenceGatherer, models []Model, metrics attemptRecorder) *Service {
	return &Service{
		log:      logger.With("service", "chat"),
		evidence: gatherer,
		models:   models,
		metrics:  metrics,
	}
}

// Chat returns the first non-empty model answer. When every model fails the
// error wraps domain.ErrModelUnavailable.
func (s *Service) Chat(ctx context.Context, input Input) (*Reply, error) {
	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var evidenceText string
	if code := DetectCode(input.Message); code != "" {
		s.log.DebugContext(ctx, "code detected in chat message", slog.String("code", code))
		evidenceText = formatEvidence(code, s.evidence.Gather(ctx, code))
	}

	req := buildRequest(input, evidenceText)

	for _, m := range s.models {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("chat.Chat: %w", err)
		}

		start := time.Now()
		answer, err := m.Complete(ctx, req)
		answer = strings.TrimSpace(answer)

		switch {
		case err != nil:
			s.log.WarnContext(ctx, "chat model failed",
				slog.String("model", m.Name()), slog.String("error", err.Error()))
			s.record(m.Name(), "error", time.Since(start))
		case answer == "":
			s.log.WarnContext(ctx, "chat model returned empty answer", slog.String("model", m.Name()))
			s.record(m.Name(), "invalid", time.Since(start))
		default:
			s.record(m.Name(), "accepted", time.Since(start))
			return &Reply{Response: answer, SourceModel: m.Name()}, nil
		}
	}

	s.log.ErrorContext(ctx, "all chat models failed", slog.Int("models", len(s.models)))
	return nil, fmt.Errorf("chat.Chat: %w", domain.ErrModelUnavailable)
}

func (s *Service) record(model, result string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordModelAttempt(model, result, d)
}
