// Package model holds the wire-level data types shared across the service:
// raw upstream bars, enriched snapshots, signals, ticks and the aggregate.
package model

// Bars is a raw upstream OHLCV series, column-oriented and nullable. The
// quote adapters fill it verbatim; the series processor cleans it. Columns
// are pointer slices because upstreams emit nulls mid-series, and a column
// may be shorter than Timestamps.
type Bars struct {
	Timestamps []int64
	Open       []*float64
	High       []*float64
	Low        []*float64
	Close      []*float64
	Volume     []*float64
}

// Len returns the number of bars, driven by the timestamp column.
func (b *Bars) Len() int { return len(b.Timestamps) }

// OHLCV is the cleaned, fully populated series carried by a snapshot.
type OHLCV struct {
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []float64 `json:"volume"`
}
