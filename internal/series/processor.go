// Package series turns a raw upstream OHLCV series into an enriched
// instrument snapshot: it drops invalid bars, back-fills single-field gaps
// and computes the full indicator set with the standard default windows.
package series

import (
	"trading-monitor/internal/indicator"
	"trading-monitor/internal/model"
)

// Default indicator windows.
const (
	RSIPeriod       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	BollingerPeriod = 20
	BollingerMult   = 2.0
	KDJN            = 9
	KDJM1           = 3
	KDJM2           = 3
)

// Enrich cleans the raw bars and builds the instrument snapshot.
//
// Only bars with a usable close survive. For surviving bars a missing
// open/high/low is substituted with that bar's close (a one-field upstream
// gap must not invalidate the whole bar) and a missing volume with 0.
// Returns nil when no bars survive; that is "no data", not an error.
func Enrich(bars *model.Bars) *model.Snapshot {
	if bars == nil {
		return nil
	}

	n := bars.Len()
	timestamps := make([]int64, 0, n)
	opens := make([]float64, 0, n)
	highs := make([]float64, 0, n)
	lows := make([]float64, 0, n)
	closes := make([]float64, 0, n)
	volumes := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		c := deref(bars.Close, i)
		if c == nil {
			continue
		}
		timestamps = append(timestamps, bars.Timestamps[i])
		closes = append(closes, *c)
		opens = append(opens, orClose(deref(bars.Open, i), *c))
		highs = append(highs, orClose(deref(bars.High, i), *c))
		lows = append(lows, orClose(deref(bars.Low, i), *c))
		if v := deref(bars.Volume, i); v != nil {
			volumes = append(volumes, *v)
		} else {
			volumes = append(volumes, 0)
		}
	}

	if len(closes) == 0 {
		return nil
	}

	currentPrice := closes[len(closes)-1]
	prevClose := currentPrice
	if len(closes) > 1 {
		prevClose = closes[len(closes)-2]
	}
	change := currentPrice - prevClose
	changePct := 0.0
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}

	return &model.Snapshot{
		Timestamps: timestamps,
		OHLCV: model.OHLCV{
			Open:   opens,
			High:   highs,
			Low:    lows,
			Close:  closes,
			Volume: volumes,
		},
		CurrentPrice: currentPrice,
		PrevClose:    prevClose,
		Change:       change,
		ChangePct:    changePct,
		RSI:          indicator.RSI(closes, RSIPeriod),
		MACD:         indicator.MACD(closes, MACDFast, MACDSlow, MACDSignal),
		Bollinger:    indicator.Bollinger(closes, BollingerPeriod, BollingerMult),
		KDJ:          indicator.KDJ(highs, lows, closes, KDJN, KDJM1, KDJM2),
		MA: model.MovingAverages{
			MA5:  indicator.SMA(closes, 5),
			MA10: indicator.SMA(closes, 10),
			MA20: indicator.SMA(closes, 20),
			MA60: indicator.SMA(closes, 60),
		},
	}
}

// deref returns the i-th element of a nullable column, nil when the column
// is short or the element is null/NaN.
func deref(col []*float64, i int) *float64 {
	if i >= len(col) || col[i] == nil {
		return nil
	}
	v := *col[i]
	if v != v { // NaN closes are treated the same as nulls
		return nil
	}
	return col[i]
}

func orClose(v *float64, c float64) float64 {
	if v == nil || *v == 0 {
		return c
	}
	return *v
}
