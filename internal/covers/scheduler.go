package covers

import (
	"context"
	"errors"
	"log/slog"

	"bindery/internal/catalog"
	"bindery/internal/logging"
	"bindery/internal/metrics"
)

// State is the presentation state of one record's cover.
type State string

const (
	// StatePending marks a record whose resolution has not completed yet.
	// The scheduler never reports it; rendering layers use it as the initial
	// placeholder state.
	StatePending State = "pending"
	// StateFound carries a resolved cover.
	StateFound State = "found"
	// StateNotFound marks a record that was searched without a confident match.
	StateNotFound State = "not-found"
	// StateNotAttempted marks a record past the sweep budget. Distinct from
	// not-found: nothing was concluded about it.
	StateNotAttempted State = "not-attempted"
)

// Update reports one record's completed state during a sweep.
type Update struct {
	Fingerprint string
	Record      catalog.Record
	State       State
	Cover       *Cover
}

// Scheduler applies the resolver to an ordered record list under a bounded
// lookup budget, strictly one resolution at a time. Sequencing is the rate
// discipline for the external service, not an implementation shortcut.
type Scheduler struct {
	resolver *Resolver
	budget   int
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewScheduler constructs a scheduler. Budget caps how many records one
// sweep may resolve.
func NewScheduler(resolver *Resolver, budget int, logger *slog.Logger, m *metrics.Metrics) (*Scheduler, error) {
	if resolver == nil {
		return nil, errors.New("scheduler requires a resolver")
	}
	if budget <= 0 {
		return nil, errors.New("scheduler budget must be positive")
	}
	return &Scheduler{
		resolver: resolver,
		budget:   budget,
		logger:   logging.NewComponentLogger(logger, "coversweep"),
		metrics:  m,
	}, nil
}

// Budget returns the per-sweep resolution cap.
func (s *Scheduler) Budget() int {
	return s.budget
}

// ResolveAll resolves covers for the first budget records in input order and
// reports each result through the callback as it completes. Records past the
// budget, and records remaining after a context cancellation, are reported
// not-attempted. Returns the context error when the sweep was cut short.
func (s *Scheduler) ResolveAll(ctx context.Context, records []catalog.Record, report func(Update)) error {
	if report == nil {
		report = func(Update) {}
	}

	attempted := 0
	for i, rec := range records {
		fingerprint := FingerprintRecord(rec)

		if i >= s.budget || ctx.Err() != nil {
			report(Update{Fingerprint: fingerprint, Record: rec, State: StateNotAttempted})
			continue
		}

		attempted++
		cover := s.resolver.Resolve(ctx, rec)
		if cover != nil {
			report(Update{Fingerprint: fingerprint, Record: rec, State: StateFound, Cover: cover})
			continue
		}
		report(Update{Fingerprint: fingerprint, Record: rec, State: StateNotFound})
	}

	s.metrics.BatchSweep(attempted)
	s.logger.Debug("cover sweep finished",
		logging.Int("records", len(records)),
		logging.Int("attempted", attempted))
	return ctx.Err()
}
