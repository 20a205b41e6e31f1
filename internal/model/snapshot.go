package model

import (
	"trading-monitor/internal/indicator"
)

// MovingAverages groups the fixed-window SMAs carried by every snapshot.
type MovingAverages struct {
	MA5  indicator.Series `json:"ma5"`
	MA10 indicator.Series `json:"ma10"`
	MA20 indicator.Series `json:"ma20"`
	MA60 indicator.Series `json:"ma60"`
}

// Snapshot is the enriched per-instrument view: the cleaned OHLCV series,
// current price/change figures and every derived indicator. It is rebuilt
// wholesale on each refresh cycle and never patched in place.
type Snapshot struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Sector  string `json:"sector,omitempty"`
	Display string `json:"display,omitempty"`

	Timestamps []int64 `json:"timestamps"`
	OHLCV      OHLCV   `json:"ohlcv"`

	CurrentPrice float64 `json:"currentPrice"`
	PrevClose    float64 `json:"prevClose"`
	Change       float64 `json:"change"`
	ChangePct    float64 `json:"changePct"`

	RSI       indicator.Series          `json:"rsi"`
	MACD      indicator.MACDResult      `json:"macd"`
	Bollinger indicator.BollingerResult `json:"bollinger"`
	KDJ       indicator.KDJResult       `json:"kdj"`
	MA        MovingAverages            `json:"ma"`
}
