// Package stream is the live tick pipeline: a persistent upstream trade
// stream with automatic reconnection for the crypto group, plus fixed
// interval quote pollers for the stock groups. Every event is normalized
// into a model.Tick and handed to the broadcast fan-out.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"trading-monitor/internal/metrics"
	"trading-monitor/internal/model"
	"trading-monitor/internal/watchlist"
)

// Broadcaster delivers normalized ticks to viewers.
type Broadcaster interface {
	BroadcastTick(t *model.Tick)
}

// State is the connection state of the upstream trade stream.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// DefaultReconnectDelay is the fixed wait before a reconnect attempt.
// Flat on purpose: one attempt per close, no backoff growth, no limit.
const DefaultReconnectDelay = 5 * time.Second

// DefaultStreamHost is the Binance combined-stream endpoint.
const DefaultStreamHost = "wss://stream.binance.com:9443"

// StreamURL builds the combined trade-stream URL for the raw symbols.
func StreamURL(host string, symbols []string) string {
	streams := make([]string, len(symbols))
	for i, s := range symbols {
		streams[i] = strings.ToLower(s) + "@trade"
	}
	return fmt.Sprintf("%s/stream?streams=%s", host, strings.Join(streams, "/"))
}

// CryptoStream owns one upstream trade stream connection and its reconnect
// timer. State moves DISCONNECTED → CONNECTING → CONNECTED and back to
// DISCONNECTED on any close, which schedules exactly one delayed reconnect.
type CryptoStream struct {
	url   string
	watch *watchlist.Watchlist
	sink  Broadcaster

	log            *slog.Logger
	metrics        *metrics.Metrics
	reconnectDelay time.Duration
	dialer         *websocket.Dialer

	state atomic.Int32
}

// NewCryptoStream creates a stream over the watchlist's crypto symbols.
// url "" uses the public Binance endpoint; metrics may be nil.
func NewCryptoStream(url string, watch *watchlist.Watchlist, sink Broadcaster, log *slog.Logger, m *metrics.Metrics) *CryptoStream {
	if url == "" {
		url = StreamURL(DefaultStreamHost, watch.CryptoSymbols())
	}
	return &CryptoStream{
		url:            url,
		watch:          watch,
		sink:           sink,
		log:            log,
		metrics:        m,
		reconnectDelay: DefaultReconnectDelay,
		dialer:         &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// SetReconnectDelay overrides the reconnect delay (tests).
func (s *CryptoStream) SetReconnectDelay(d time.Duration) { s.reconnectDelay = d }

// State returns the current connection state.
func (s *CryptoStream) State() State { return State(s.state.Load()) }

// Run connects and consumes the stream until ctx is cancelled. Every
// disconnect, failed dials included, schedules a single reconnect after
// the fixed delay; the pending timer is released when ctx ends.
func (s *CryptoStream) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			s.state.Store(int32(StateDisconnected))
			return err
		}

		s.state.Store(int32(StateConnecting))
		err := s.consume(ctx)
		s.state.Store(int32(StateDisconnected))
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.log.Warn("trade stream disconnected, reconnecting", "delay", s.reconnectDelay, "err", err)
		if s.metrics != nil {
			s.metrics.StreamReconnects.Inc()
		}

		timer := time.NewTimer(s.reconnectDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			s.state.Store(int32(StateDisconnected))
			return ctx.Err()
		}
	}
}

// streamEnvelope is one combined-stream message.
type streamEnvelope struct {
	Stream string     `json:"stream"`
	Data   tradeEvent `json:"data"`
}

type tradeEvent struct {
	EventType    string `json:"e"`
	Symbol       string `json:"s"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	TradeTime    int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

// consume dials the stream and pumps trade events until the connection
// breaks. Per-message parse errors are swallowed, never fatal.
func (s *CryptoStream) consume(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("stream: dial: %w", err)
	}
	defer conn.Close()

	s.state.Store(int32(StateConnected))
	s.log.Info("trade stream connected", "url", s.url)

	conn.SetReadLimit(1 << 20)

	// Close the socket when ctx ends so ReadMessage unblocks.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env streamEnvelope
		if err := json.Unmarshal(msg, &env); err != nil {
			continue
		}
		if env.Data.EventType != "trade" {
			continue
		}
		tick, err := s.tickFromTrade(env.Data)
		if err != nil {
			s.log.Debug("dropping unparsable trade event", "err", err)
			continue
		}
		s.sink.BroadcastTick(tick)
	}
}

// tickFromTrade normalizes a raw trade event. The raw symbol is resolved
// to its display alias through the watchlist, falling back to the raw
// symbol when unmapped.
func (s *CryptoStream) tickFromTrade(ev tradeEvent) (*model.Tick, error) {
	price, err := strconv.ParseFloat(ev.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("stream: price %q: %w", ev.Price, err)
	}
	qty, err := strconv.ParseFloat(ev.Quantity, 64)
	if err != nil {
		return nil, fmt.Errorf("stream: quantity %q: %w", ev.Quantity, err)
	}

	display := ev.Symbol
	if inst, ok := s.watch.LookupCrypto(ev.Symbol); ok {
		display = inst.Key()
	}

	maker := ev.IsBuyerMaker
	return &model.Tick{
		Type:         "tick",
		Market:       watchlist.GroupCrypto,
		Symbol:       display,
		Price:        price,
		Quantity:     &qty,
		Time:         ev.TradeTime,
		IsBuyerMaker: &maker,
	}, nil
}
