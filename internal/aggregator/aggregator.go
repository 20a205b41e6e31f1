// Package aggregator orchestrates the periodic full refresh: one concurrent
// fetch per watched instrument across every market group, enrichment through
// the series processor, signal generation, and a single TTL-guarded cache of
// the merged result.
package aggregator

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
	"trading-monitor/internal/series"
	"trading-monitor/internal/signal"
	"trading-monitor/internal/watchlist"
)

// DefaultTTL is how long a cached aggregate stays fresh.
const DefaultTTL = 30 * time.Second

// DefaultMaxConcurrent bounds the per-refresh fan-out so a large watchlist
// cannot trip upstream rate limits.
const DefaultMaxConcurrent = 16

// SeriesFetcher fetches the raw daily series for one instrument.
type SeriesFetcher func(ctx context.Context, inst watchlist.Instrument) (*model.Bars, error)

// Aggregator owns the cached AggregateSnapshot. Safe for concurrent use:
// the mutex serializes the freshness check and the refresh itself, so
// concurrent Snapshot calls inside one TTL window trigger at most one
// upstream fetch storm.
type Aggregator struct {
	watch    *watchlist.Watchlist
	fetchers map[string]SeriesFetcher // group tag → fetcher

	ttl           time.Duration
	maxConcurrent int
	now           func() time.Time
	log           *slog.Logger
	metrics       *metrics.Metrics

	mu        sync.Mutex
	cached    *model.AggregateSnapshot
	fetchedAt time.Time
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithTTL overrides the cache TTL.
func WithTTL(ttl time.Duration) Option {
	return func(a *Aggregator) { a.ttl = ttl }
}

// WithClock injects a clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithMaxConcurrent bounds the refresh fan-out (0 keeps the default).
func WithMaxConcurrent(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxConcurrent = n
		}
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// New creates an Aggregator over the given watchlist. fetchers maps each
// market group tag to the adapter that serves it; groups without a fetcher
// are skipped.
func New(watch *watchlist.Watchlist, fetchers map[string]SeriesFetcher, log *slog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		watch:         watch,
		fetchers:      fetchers,
		ttl:           DefaultTTL,
		maxConcurrent: DefaultMaxConcurrent,
		now:           time.Now,
		log:           log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Snapshot returns the cached aggregate, refreshing it first when the cache
// is missing or older than the TTL. Per-instrument failures are swallowed
// (the instrument is omitted); only an orchestration failure is returned.
func (a *Aggregator) Snapshot(ctx context.Context) (*model.AggregateSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && a.now().Sub(a.fetchedAt) <= a.ttl {
		return a.cached, nil
	}

	// The refresh must outlive the caller: a viewer disconnecting
	// mid-cycle would otherwise turn every fetch into a canceled-context
	// omission and cache an empty aggregate for the whole TTL.
	start := a.now()
	snap, err := a.refresh(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	a.cached = snap
	a.fetchedAt = start
	return snap, nil
}

// refresh fetches every instrument of every group concurrently and merges
// the results. The merged aggregate is published only after all fetches of
// the cycle finish.
func (a *Aggregator) refresh(ctx context.Context) (*model.AggregateSnapshot, error) {
	start := a.now()
	agg := model.NewAggregateSnapshot(a.watch.GroupTags(), start)

	var mu sync.Mutex // guards agg during fan-in
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)

	for _, tag := range a.watch.GroupTags() {
		fetch, ok := a.fetchers[tag]
		if !ok {
			continue
		}
		for _, inst := range a.watch.Group(tag) {
			tag, inst := tag, inst
			g.Go(func() error {
				bars, err := fetch(gctx, inst)
				if err != nil {
					a.log.Warn("instrument fetch failed", "group", tag, "symbol", inst.Symbol, "err", err)
					if a.metrics != nil {
						a.metrics.FetchErrors.WithLabelValues(tag).Inc()
					}
					return nil // failures only omit the instrument
				}

				snap := series.Enrich(bars)
				if snap == nil {
					a.log.Warn("instrument series empty after filtering", "group", tag, "symbol", inst.Symbol)
					return nil
				}
				snap.Symbol = inst.Symbol
				snap.Name = inst.Name
				snap.Sector = inst.Sector
				snap.Display = inst.Display

				sigs := signal.Generate(snap, inst.Key(), inst.Name)

				mu.Lock()
				agg.Groups[tag][inst.Key()] = snap
				agg.Signals = append(agg.Signals, sigs...)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort keeps equal-strength signals in generation order.
	sort.SliceStable(agg.Signals, func(i, j int) bool {
		return agg.Signals[i].Strength > agg.Signals[j].Strength
	})

	if a.metrics != nil {
		a.metrics.RefreshesTotal.Inc()
		a.metrics.RefreshDuration.Observe(a.now().Sub(start).Seconds())
	}
	a.log.Info("aggregate refresh complete",
		"instruments", countSnapshots(agg), "signals", len(agg.Signals),
		"took", a.now().Sub(start))
	return agg, nil
}

func countSnapshots(agg *model.AggregateSnapshot) int {
	n := 0
	for _, m := range agg.Groups {
		n += len(m)
	}
	return n
}
