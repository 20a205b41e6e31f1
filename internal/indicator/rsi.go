package indicator

// RSI computes the Relative Strength Index using Wilder's smoothing.
// The first period positions are undefined; if len(x) <= period the whole
// output is undefined. The seed averages are simple means of the first
// period price changes. A zero average loss pins RS at 100 so the value
// saturates toward 100 instead of dividing by zero.
func RSI(x []float64, period int) Series {
	out := newUndefined(len(x))
	if period <= 0 || len(x) <= period {
		return out
	}

	changes := make([]float64, len(x)-1)
	for i := 1; i < len(x); i++ {
		changes[i-1] = x[i] - x[i-1]
	}

	var avgGain, avgLoss float64
	for i := 0; i < period; i++ {
		if changes[i] > 0 {
			avgGain += changes[i]
		} else {
			avgLoss -= changes[i]
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period; i < len(changes); i++ {
		gain, loss := 0.0, 0.0
		if changes[i] > 0 {
			gain = changes[i]
		} else {
			loss = -changes[i]
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i+1] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	rs := 100.0
	if avgLoss != 0 {
		rs = avgGain / avgLoss
	}
	return 100.0 - 100.0/(1.0+rs)
}
