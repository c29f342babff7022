// Package cache memoizes lookup results in process memory.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

// Source is a lookup source that can be wrapped.
type Source interface {
	Name() string
	Lookup(ctx context.Context, code string) domain.LookupResult
}

// HitRecorder receives cache hit/miss observations.
type HitRecorder interface {
	RecordCache(source string, hit bool)
}

// Cached wraps a Source with a TTL cache keyed by the code as the source
// receives it. Sources match codes in their own format, so two spellings of
// one product are separate entries. Unavailable results are never stored.
type Cached struct {
	next    Source
	cache   *gocache.Cache
	metrics HitRecorder
}

// Wrap returns src unchanged when ttl is zero or negative.
func Wrap(src Source, ttl time.Duration, metrics HitRecorder) Source {
	if ttl <= 0 {
		return src
	}
	return &Cached{
		next:    src,
		cache:   gocache.New(ttl, ttl*2),
		metrics: metrics,
	}
}

// Name returns the wrapped source's name.
func (c *Cached) Name() string { return c.next.Name() }

// Lookup returns a cached result when one exists, else delegates.
func (c *Cached) Lookup(ctx context.Context, code string) domain.LookupResult {
	code = strings.TrimSpace(code)
	key := c.next.Name() + ":" + code

	if v, ok := c.cache.Get(key); ok {
		c.record(true)
		return v.(domain.LookupResult)
	}
	c.record(false)

	res := c.next.Lookup(ctx, code)
	if !res.Unavailable {
		c.cache.Set(key, res, gocache.DefaultExpiration)
	}
	return res
}

func (c *Cached) record(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCache(c.next.Name(), hit)
	}
}
