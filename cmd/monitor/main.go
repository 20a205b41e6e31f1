// Command monitor serves the market monitoring dashboard: an aggregate
// snapshot API over three watchlist groups, live tick streaming over
// WebSocket, and Prometheus metrics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"trading-monitor/config"
	"trading-monitor/internal/aggregator"
	"trading-monitor/internal/hub"
	"trading-monitor/internal/logger"
	"trading-monitor/internal/markethours"
	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
	"trading-monitor/internal/quote"
	"trading-monitor/internal/server"
	"trading-monitor/internal/stream"
	"trading-monitor/internal/watchlist"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init("trading-monitor", logger.ParseLevel(cfg.LogLevel))

	watch := watchlist.Default()
	if cfg.WatchlistFile != "" {
		w, err := watchlist.Load(cfg.WatchlistFile)
		if err != nil {
			log.Error("loading watchlist file", "path", cfg.WatchlistFile, "err", err)
			os.Exit(1)
		}
		watch = w
		log.Info("watchlist loaded", "path", cfg.WatchlistFile)
	}

	m := metrics.New()

	client := quote.NewClient(cfg.RequestTimeout)
	yahoo := quote.NewYahoo(client, cfg.YahooBaseURL)
	binance := quote.NewBinance(client, cfg.BinanceBaseURL)

	fetchers := map[string]aggregator.SeriesFetcher{
		watchlist.GroupUSStocks: func(ctx context.Context, inst watchlist.Instrument) (*model.Bars, error) {
			return yahoo.DailySeries(ctx, inst.Symbol)
		},
		watchlist.GroupCNStocks: func(ctx context.Context, inst watchlist.Instrument) (*model.Bars, error) {
			return yahoo.DailySeries(ctx, inst.Symbol)
		},
		watchlist.GroupCrypto: func(ctx context.Context, inst watchlist.Instrument) (*model.Bars, error) {
			return binance.DailySeries(ctx, inst.Symbol)
		},
	}
	agg := aggregator.New(watch, fetchers, log,
		aggregator.WithTTL(cfg.SnapshotTTL),
		aggregator.WithMaxConcurrent(cfg.MaxConcurrent),
		aggregator.WithMetrics(m),
	)

	h := hub.New(log, m)

	crypto := stream.NewCryptoStream(cfg.StreamURL, watch, h, log, m)
	crypto.SetReconnectDelay(cfg.ReconnectDelay)

	usPoller := stream.NewQuotePoller(watchlist.GroupUSStocks, watch.Group(watchlist.GroupUSStocks),
		yahoo.Latest, h, log, m, markethours.NewYork())
	usPoller.SetInterval(cfg.PollInterval)
	cnPoller := stream.NewQuotePoller(watchlist.GroupCNStocks, watch.Group(watchlist.GroupCNStocks),
		yahoo.Latest, h, log, m, markethours.Shanghai())
	cnPoller.SetInterval(cfg.PollInterval)

	pipeline := stream.NewPipeline(crypto, usPoller, cnPoller)

	srv := server.New(log, agg, h, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pipeline.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx, cfg.Addr()) })

	log.Info("trading monitor started", "addr", cfg.Addr(),
		"us", len(watch.Group(watchlist.GroupUSStocks)),
		"crypto", len(watch.Group(watchlist.GroupCrypto)),
		"cn", len(watch.Group(watchlist.GroupCNStocks)))

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
