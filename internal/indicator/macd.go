package indicator

// MACDResult holds the MACD line, its signal line and the histogram.
// All three share the input length and EMA's defined-from-zero semantics.
type MACDResult struct {
	MACD      Series `json:"macd"`
	Signal    Series `json:"signal"`
	Histogram Series `json:"histogram"`
}

// MACD computes Moving Average Convergence/Divergence:
// macd = EMA(x,fast) - EMA(x,slow), signal = EMA(macd, signalPeriod),
// histogram = macd - signal.
func MACD(x []float64, fast, slow, signalPeriod int) MACDResult {
	emaFast := EMA(x, fast)
	emaSlow := EMA(x, slow)

	macdLine := make(Series, len(x))
	for i := range macdLine {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}

	signalLine := EMA(macdLine, signalPeriod)

	histogram := make(Series, len(x))
	for i := range histogram {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return MACDResult{MACD: macdLine, Signal: signalLine, Histogram: histogram}
}
