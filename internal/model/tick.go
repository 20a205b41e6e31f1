package model

import "encoding/json"

// Tick is a single real-time price update pushed to viewers. Crypto trade
// ticks carry quantity and maker side; polled stock ticks carry change
// figures and the trading-session state instead. Optional fields are
// pointers so absent values stay off the wire.
type Tick struct {
	Type         string   `json:"type"` // always "tick"
	Market       string   `json:"market"`
	Symbol       string   `json:"symbol"`
	Price        float64  `json:"price"`
	Change       *float64 `json:"change,omitempty"`
	ChangePct    *float64 `json:"changePct,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Time         int64    `json:"time"` // event time, epoch milliseconds
	IsBuyerMaker *bool    `json:"isBuyerMaker,omitempty"`
	MarketState  string   `json:"marketState,omitempty"`
}

// JSON returns the encoded tick, ignoring errors for hot-path usage.
func (t *Tick) JSON() []byte {
	b, _ := json.Marshal(t)
	return b
}
