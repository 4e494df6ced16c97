package covers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"bindery/internal/catalog"
	"bindery/internal/logging"
	"bindery/internal/metrics"
	"bindery/internal/naver"
)

// TTLs groups the three cache lifetimes the resolver writes with.
type TTLs struct {
	// Positive covers a confirmed match; the external listing for a known
	// work rarely changes, so this is long.
	Positive time.Duration
	// Negative covers a searched-but-unmatched record; medium, so the
	// external catalog can eventually surface a better listing.
	Negative time.Duration
	// Transient covers resolutions that hit a transport failure; short, so
	// outages self-heal without hammering the service.
	Transient time.Duration
}

// DefaultTTLs returns the standard cache lifetimes.
func DefaultTTLs() TTLs {
	return TTLs{
		Positive:  30 * 24 * time.Hour,
		Negative:  24 * time.Hour,
		Transient: 10 * time.Minute,
	}
}

func (t TTLs) normalized() TTLs {
	def := DefaultTTLs()
	if t.Positive <= 0 {
		t.Positive = def.Positive
	}
	if t.Negative <= 0 {
		t.Negative = def.Negative
	}
	if t.Transient <= 0 {
		t.Transient = def.Transient
	}
	return t
}

// ResolverOptions collects the collaborators a Resolver needs.
type ResolverOptions struct {
	Searcher naver.Searcher
	Cache    *Cache
	Policy   Policy
	TTLs     TTLs
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Resolver drives the end-to-end cover decision for one record.
type Resolver struct {
	searcher naver.Searcher
	cache    *Cache
	policy   Policy
	ttls     TTLs
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewResolver constructs a resolver. The searcher is required; a missing
// cache degrades to resolving on every call.
func NewResolver(opts ResolverOptions) (*Resolver, error) {
	if opts.Searcher == nil {
		return nil, errors.New("resolver requires a searcher")
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewCache(nil, opts.Logger)
	}
	return &Resolver{
		searcher: opts.Searcher,
		cache:    cache,
		policy:   opts.Policy.normalized(),
		ttls:     opts.TTLs.normalized(),
		logger:   logging.NewComponentLogger(opts.Logger, "covers"),
		metrics:  opts.Metrics,
	}, nil
}

// Resolve returns the cover for a record, or nil when no confident match
// exists. It never returns an error: transport and storage failures degrade
// to a nil outcome with a short-lived negative cache entry so the next sweep
// after the TTL retries naturally.
func (r *Resolver) Resolve(ctx context.Context, rec catalog.Record) *Cover {
	fingerprint := FingerprintRecord(rec)

	if outcome, ok := r.cache.Get(ctx, fingerprint); ok {
		r.metrics.CacheEvent("hit")
		return outcome
	}
	r.metrics.CacheEvent("miss")

	queries := BuildQueries(rec)
	if len(queries) == 0 {
		r.cache.Set(ctx, fingerprint, nil, r.ttls.Negative)
		r.metrics.Resolution(metrics.OutcomeNotFound)
		return nil
	}
	if len(queries) > r.policy.MaxTiers {
		queries = queries[:r.policy.MaxTiers]
	}

	sawFailure := false
	bestSeen := -1
	for tier, query := range queries {
		if ctx.Err() != nil {
			sawFailure = true
			break
		}

		resp, err := r.searcher.Search(ctx, query, r.policy.ResultCount)
		if err != nil {
			sawFailure = true
			r.logger.Warn("search tier failed",
				logging.Int("tier", tier+1),
				logging.String("query", query),
				logging.Error(err))
			continue
		}
		if len(resp.Items) == 0 {
			continue
		}

		best, ok := selectBestCandidate(r.policy, rec, resp.Items)
		if !ok {
			continue
		}
		if best.Score > bestSeen {
			bestSeen = best.Score
		}

		image := strings.TrimSpace(StripMarkup(best.Candidate.Image))
		if best.Score >= r.policy.PassThreshold && image != "" {
			cover := &Cover{
				Image: image,
				Link:  strings.TrimSpace(best.Candidate.Link),
			}
			r.cache.Set(ctx, fingerprint, cover, r.ttls.Positive)
			r.metrics.Resolution(metrics.OutcomeFound)
			r.metrics.BestScore(best.Score)
			r.logger.Debug("cover resolved",
				logging.String("title", rec.Title),
				logging.Int("tier", tier+1),
				logging.Int("score", best.Score))
			return cover
		}
	}

	if bestSeen >= 0 {
		r.metrics.BestScore(bestSeen)
	}

	// A failed tier means the service never got a full chance to answer, so
	// the negative decision only sticks for the transient lifetime.
	ttl := r.ttls.Negative
	outcome := metrics.OutcomeNotFound
	if sawFailure {
		ttl = r.ttls.Transient
		outcome = metrics.OutcomeTransient
	}
	r.cache.Set(ctx, fingerprint, nil, ttl)
	r.metrics.Resolution(outcome)
	return nil
}
