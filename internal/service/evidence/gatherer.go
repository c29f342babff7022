// Package evidence collects lookup results for a drug code from every
// configured source and renders them as prompt text.
package evidence

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Source is one lookup backend. Lookup never fails; problems are reported
// through LookupResult.Unavailable.
type Source interface {
	Name() string
	Lookup(ctx context.Context, code string) domain.LookupResult
}

// lookupRecorder receives per-source lookup observations.
type lookupRecorder interface {
	RecordLookup(source, result string, d time.Duration)
}

// Gatherer queries all sources for a code.
type Gatherer struct {
	log     *slog.Logger
	sources []Source
	metrics lookupRecorder
}

// NewGatherer creates a Gatherer. Sources are reported in the order given.
func NewGatherer(logger *slog.Logger, metrics lookupRecorder, sources ...Source) *Gatherer {
	return &Gatherer{
		log:     logger.With("service", "evidence"),
		sources: sources,
		metrics: metrics,
	}
}

// Sources returns the names of the configured sources, in order.
func (g *Gatherer) Sources() []string {
	names := make([]string, len(g.sources))
	for i, s := range g.sources {
		names[i] = s.Name()
	}
	return names
}

// Gather runs every source for code concurrently. Results keep the source
// order. An empty code yields empty evidence without any lookup.
func (g *Gatherer) Gather(ctx context.Context, code string) domain.Evidence {
	code = strings.TrimSpace(code)
	ev := domain.Evidence{Code: code}
	if code == "" || len(g.sources) == 0 {
		return ev
	}

	results := make([]domain.LookupResult, len(g.sources))
	var wg sync.WaitGroup
	for i, src := range g.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			start := time.Now()
			res := src.Lookup(ctx, code)
			if res.Source == "" {
				res.Source = src.Name()
			}
			results[i] = res
			g.record(src.Name(), res, time.Since(start))
		}(i, src)
	}
	wg.Wait()

	ev.Results = results

	g.log.DebugContext(ctx, "evidence gathered",
		slog.String("code", code),
		slog.Bool("any_found", ev.AnyFound()),
		slog.Bool("recalled", ev.Recalled()),
	)

	return ev
}

func (g *Gatherer) record(source string, res domain.LookupResult, d time.Duration) {
	if res.Unavailable {
		g.log.Warn("lookup source unavailable", slog.String("source", source), slog.String("details", res.Details))
	}
	if g.metrics != nil {
		g.metrics.RecordLookup(source, Outcome(res), d)
	}
}

// Outcome classifies a result as "found", "miss" or "unavailable".
func Outcome(res domain.LookupResult) string {
	switch {
	case res.Unavailable:
		return "unavailable"
	case res.Found:
		return "found"
	default:
		return "miss"
	}
}
