package quote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"trading-monitor/internal/model"
)

// DefaultBinanceBaseURL is the Binance spot REST API root.
const DefaultBinanceBaseURL = "https://api.binance.com"

// klineLimit covers ~6 months of daily candles, matching the stock groups.
const klineLimit = 180

// Binance fetches daily klines from the Binance spot REST API.
type Binance struct {
	client  *Client
	baseURL string
}

// NewBinance creates a Binance adapter. baseURL "" uses the public endpoint.
func NewBinance(client *Client, baseURL string) *Binance {
	if baseURL == "" {
		baseURL = DefaultBinanceBaseURL
	}
	return &Binance{client: client, baseURL: baseURL}
}

// DailySeries fetches daily klines for symbol (e.g. "BTCUSDT").
// Binance klines never contain nulls, so every column is fully populated.
func (b *Binance) DailySeries(ctx context.Context, symbol string) (*model.Bars, error) {
	u := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&limit=%d",
		b.baseURL, url.QueryEscape(symbol), klineLimit)

	// Kline rows are heterogeneous arrays:
	// [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
	var rows [][]any
	if err := b.client.getJSON(ctx, u, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("binance: %s: empty klines response", symbol)
	}

	bars := &model.Bars{
		Timestamps: make([]int64, 0, len(rows)),
		Open:       make([]*float64, 0, len(rows)),
		High:       make([]*float64, 0, len(rows)),
		Low:        make([]*float64, 0, len(rows)),
		Close:      make([]*float64, 0, len(rows)),
		Volume:     make([]*float64, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("binance: %s: short kline row %d", symbol, i)
		}
		bars.Timestamps = append(bars.Timestamps, int64(toFloat(row[0])))
		bars.Open = append(bars.Open, floatPtr(toFloat(row[1])))
		bars.High = append(bars.High, floatPtr(toFloat(row[2])))
		bars.Low = append(bars.Low, floatPtr(toFloat(row[3])))
		bars.Close = append(bars.Close, floatPtr(toFloat(row[4])))
		bars.Volume = append(bars.Volume, floatPtr(toFloat(row[5])))
	}
	return bars, nil
}

// toFloat coerces the mixed number/string cells of a kline row.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func floatPtr(v float64) *float64 { return &v }
