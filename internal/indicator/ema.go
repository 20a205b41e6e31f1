package indicator

// EMA computes the exponential moving average with smoothing k = 2/(period+1).
// The result is defined from index 0: the series is seeded with x[0], which
// makes early values approximate. MACD and its signal line depend on that
// seeding, so it must not change.
func EMA(x []float64, period int) Series {
	out := make(Series, len(x))
	if len(x) == 0 {
		return out
	}
	k := 2.0 / float64(period+1)
	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = x[i]*k + out[i-1]*(1-k)
	}
	return out
}
