// Package verification turns a drug query into a verdict by gathering lookup
// evidence and walking a chain of language models.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
	"github.com/heartmarshall/drugverify-backend/internal/service/evidence"
)

// Fixed reasons of verdicts that are not produced by a model.
const (
	ReasonEmptyQuery = "No identifying information was provided. A barcode, NDC, GTIN, NAFDAC number, " +
		"drug name or description is required to verify a drug."
	ReasonAllFailed = "All AI models failed to process the request. Please try again later. " +
		"Until it can be verified, treat this product as suspect."
	ReasonNoModels = "The AI model failed to provide an analysis. This may be a temporary issue. " +
		"The attempt has been logged."
)

// Model is one hosted language model.
type Model interface {
	Name() string
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

// Attempt is one step of the model chain.
type Attempt struct {
	Model Model
	// WithEvidence selects the evidence-augmented prompt; otherwise the model
	// answers from its own knowledge.
	WithEvidence bool
}

type evidenceGatherer interface {
	Gather(ctx context.Context, code string) domain.Evidence
}

type verificationRecorder interface {
	RecordVerification(outcome string)
	RecordModelAttempt(provider, result string, d time.Duration)
}

type failureReporter interface {
	Report(ctx context.Context, err error)
}

// Service is the verification orchestrator.
type Service struct {
	log      *slog.Logger
	evidence evidenceGatherer
	attempts []Attempt
	allow    AllowList
	metrics  verificationRecorder
	reporter failureReporter
}

// NewService creates a verification orchestrator. metrics and reporter may be nil.
func NewService(
	logger *slog.Logger,
	gatherer evidenceGatherer,
	attempts []Attempt,
	allow AllowList,
	metrics verificationRecorder,
	reporter failureReporter,
) *Service {
	return &Service{
		log:      logger.With("service", "verification"),
		evidence: gatherer,
		attempts: attempts,
		allow:    allow,
		metrics:  metrics,
		reporter: reporter,
	}
}

// ErrAllAttemptsFailed is reported when the model chain produced nothing usable.
var ErrAllAttemptsFailed = errors.New("verification: all model attempts failed")

// Verify always returns a verdict. Failures degrade to a suspect verdict.
func (s *Service) Verify(ctx context.Context, q domain.Query) domain.Verdict {
	q = q.Trimmed()

	if q.IsEmpty() {
		s.log.InfoContext(ctx, "verification rejected: empty query")
		s.recordOutcome("invalid_query")
		return notAvailableVerdict(ReasonEmptyQuery, "", domain.Evidence{})
	}

	ev := s.evidence.Gather(ctx, q.LookupCode())
	evidenceText := evidence.Format(ev)

	var unidentified *domain.Verdict

	for i, a := range s.attempts {
		name := a.Model.Name()

		prompt := knowledgePrompt(q)
		if a.WithEvidence {
			prompt = evidencePrompt(q, evidenceText)
		}

		start := time.Now()
		text, err := a.Model.Complete(ctx, domain.SingleTurn(systemPrompt, prompt))
		elapsed := time.Since(start)
		if err != nil {
			s.log.WarnContext(ctx, "model attempt failed",
				slog.Int("attempt", i+1),
				slog.String("model", name),
				slog.String("error", err.Error()),
			)
			s.recordAttempt(name, "error", elapsed)
			continue
		}

		mv, err := parseVerdict(text)
		if err != nil {
			s.log.WarnContext(ctx, "model attempt returned invalid verdict",
				slog.Int("attempt", i+1),
				slog.String("model", name),
				slog.String("error", err.Error()),
			)
			s.recordAttempt(name, "invalid", elapsed)
			continue
		}

		// No identified drug is always suspect, whatever the model concluded.
		if domain.IsUnidentified(mv.DrugName) {
			s.log.InfoContext(ctx, "model did not identify the drug",
				slog.Int("attempt", i+1),
				slog.String("model", name),
			)
			s.recordAttempt(name, "unidentified", elapsed)
			if unidentified == nil {
				v := notAvailableVerdict(mv.Reason, name, ev)
				unidentified = &v
			}
			continue
		}

		s.recordAttempt(name, "accepted", elapsed)
		v := s.accept(mv, name, ev)
		v = applyAllowList(v, q, s.allow)

		s.log.InfoContext(ctx, "verification completed",
			slog.String("model", name),
			slog.Bool("suspect", v.IsSuspect),
			slog.String("drug", v.DrugName),
		)
		s.recordVerdict(v)
		return v
	}

	if unidentified != nil {
		s.log.InfoContext(ctx, "verification completed without identification",
			slog.String("model", unidentified.SourceModel))
		s.recordVerdict(*unidentified)
		return *unidentified
	}

	reason := ReasonAllFailed
	if len(s.attempts) == 0 {
		reason = ReasonNoModels
	}
	s.log.ErrorContext(ctx, "all model attempts failed",
		slog.Int("attempts", len(s.attempts)),
		slog.String("code", ev.Code),
	)
	if s.reporter != nil {
		s.reporter.Report(ctx, fmt.Errorf("%w: %d attempts", ErrAllAttemptsFailed, len(s.attempts)))
	}

	v := notAvailableVerdict(reason, "", ev)
	v.Fallback = true
	s.recordOutcome("fallback")
	return v
}

// accept turns a parsed model answer into a verdict, filling manufacturer
// from the lookup evidence when the model left it out.
func (s *Service) accept(mv modelVerdict, model string, ev domain.Evidence) domain.Verdict {
	v := domain.Verdict{
		IsSuspect:    *mv.IsSuspect,
		Reason:       mv.Reason,
		DrugName:     mv.DrugName,
		Manufacturer: mv.Manufacturer,
		ApprovalInfo: mv.ApprovalInfo,
		SourceModel:  model,
		Evidence:     ev,
	}
	if domain.IsUnidentified(v.Manufacturer) {
		v.Manufacturer = evidenceManufacturer(ev)
	}
	if domain.IsUnidentified(v.ApprovalInfo) {
		v.ApprovalInfo = domain.NotAvailable
	}
	return v
}

func evidenceManufacturer(ev domain.Evidence) string {
	for _, r := range ev.Results {
		if r.Found && r.Manufacturer != "" && !r.Recalled {
			return r.Manufacturer
		}
	}
	return domain.NotAvailable
}

func notAvailableVerdict(reason, model string, ev domain.Evidence) domain.Verdict {
	return domain.Verdict{
		IsSuspect:    true,
		Reason:       reason,
		DrugName:     domain.NotAvailable,
		Manufacturer: domain.NotAvailable,
		ApprovalInfo: domain.NotAvailable,
		SourceModel:  model,
		Evidence:     ev,
	}
}

func (s *Service) recordAttempt(model, result string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordModelAttempt(model, result, d)
	}
}

func (s *Service) recordVerdict(v domain.Verdict) {
	if v.IsSuspect {
		s.recordOutcome("suspect")
		return
	}
	s.recordOutcome("verified")
}

func (s *Service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordVerification(outcome)
	}
}
