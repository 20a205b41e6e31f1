package indicator

// SMA computes the simple moving average of x over the given period.
// Positions before period-1 are undefined. Uses a running sum so the
// whole series costs O(n) regardless of period.
func SMA(x []float64, period int) Series {
	out := newUndefined(len(x))
	if period <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range x {
		sum += v
		if i >= period {
			sum -= x[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}
