package stream

import (
	"context"
	"log/slog"
	"time"

	"trading-monitor/internal/markethours"
	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
	"trading-monitor/internal/quote"
	"trading-monitor/internal/watchlist"
)

// DefaultPollInterval is the pause between polling passes for a group.
const DefaultPollInterval = time.Second

// QuoteFunc fetches the latest quote for one symbol.
type QuoteFunc func(ctx context.Context, symbol string) (*quote.LatestQuote, error)

// QuotePoller polls one watchlist group's latest quotes on a fixed
// interval and broadcasts each as a tick. Instruments inside a pass are
// fetched serially; a failed instrument is skipped without aborting the
// pass.
type QuotePoller struct {
	market      string
	instruments []watchlist.Instrument
	fetch       QuoteFunc
	sink        Broadcaster

	log      *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration
	hours    *markethours.Market
	now      func() time.Time
}

// NewQuotePoller creates a poller for the group tagged market.
// hours and metrics may be nil.
func NewQuotePoller(market string, instruments []watchlist.Instrument, fetch QuoteFunc, sink Broadcaster, log *slog.Logger, m *metrics.Metrics, hours *markethours.Market) *QuotePoller {
	return &QuotePoller{
		market:      market,
		instruments: instruments,
		fetch:       fetch,
		sink:        sink,
		log:         log,
		metrics:     m,
		interval:    DefaultPollInterval,
		hours:       hours,
		now:         time.Now,
	}
}

// SetInterval overrides the polling interval (tests).
func (p *QuotePoller) SetInterval(d time.Duration) { p.interval = d }

// Run polls until ctx is cancelled. The first pass starts immediately.
func (p *QuotePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *QuotePoller) pollOnce(ctx context.Context) {
	for _, inst := range p.instruments {
		if ctx.Err() != nil {
			return
		}
		q, err := p.fetch(ctx, inst.Symbol)
		if err != nil {
			if p.metrics != nil {
				p.metrics.PollErrors.WithLabelValues(p.market).Inc()
			}
			p.log.Debug("quote poll failed", "market", p.market, "symbol", inst.Symbol, "err", err)
			continue
		}
		p.sink.BroadcastTick(p.tickFromQuote(inst, q))
	}
}

// tickFromQuote builds the outbound tick. Change fields are zero when the
// previous close is unknown or zero.
func (p *QuotePoller) tickFromQuote(inst watchlist.Instrument, q *quote.LatestQuote) *model.Tick {
	var change, changePct float64
	if q.PrevClose != 0 {
		change = q.Price - q.PrevClose
		changePct = change / q.PrevClose * 100
	}

	state := q.MarketState
	if state == "" && p.hours != nil {
		state = string(p.hours.Session(p.now()))
	}

	return &model.Tick{
		Type:        "tick",
		Market:      p.market,
		Symbol:      inst.Key(),
		Price:       q.Price,
		Change:      &change,
		ChangePct:   &changePct,
		Time:        p.now().UnixMilli(),
		MarketState: state,
	}
}
