// Package indicator implements the technical indicators behind the
// snapshot API: SMA, EMA, RSI, MACD, Bollinger Bands and KDJ. Every
// indicator returns a Series aligned 1:1 with its input; positions where
// the indicator has no value yet are undefined and serialize as JSON null.
package indicator

import (
	"math"
	"strconv"
)

// Undefined returns the in-process marker for "no value at this position".
func Undefined() float64 { return math.NaN() }

// Defined reports whether v carries a real indicator value.
func Defined(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Series is an indicator output aligned with its input series. Undefined
// positions hold NaN and marshal as null, so consumers see the same shape
// regardless of warm-up length.
type Series []float64

// MarshalJSON emits undefined and non-finite values as null.
func (s Series) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if !Defined(v) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

// Last returns the final value, ok=false when the series is empty or the
// final position is undefined.
func (s Series) Last() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	v := s[len(s)-1]
	return v, Defined(v)
}

// Prev returns the second-to-last value with the same semantics as Last.
func (s Series) Prev() (float64, bool) {
	if len(s) < 2 {
		return 0, false
	}
	v := s[len(s)-2]
	return v, Defined(v)
}

// newUndefined allocates a series of n undefined positions.
func newUndefined(n int) Series {
	out := make(Series, n)
	nan := math.NaN()
	for i := range out {
		out[i] = nan
	}
	return out
}
