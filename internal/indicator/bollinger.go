package indicator

import "math"

// BollingerResult holds the three Bollinger band series.
type BollingerResult struct {
	Upper  Series `json:"upper"`
	Middle Series `json:"middle"`
	Lower  Series `json:"lower"`
}

// Bollinger computes Bollinger Bands: middle = SMA(x, period), with upper
// and lower offset by multiplier times the population standard deviation of
// the trailing window (divide by period, not period-1). Bands are undefined
// wherever the middle is undefined.
func Bollinger(x []float64, period int, multiplier float64) BollingerResult {
	middle := SMA(x, period)
	upper := newUndefined(len(x))
	lower := newUndefined(len(x))

	for i := range x {
		if !Defined(middle[i]) {
			continue
		}
		var sumSq float64
		for j := i - period + 1; j <= i; j++ {
			d := x[j] - middle[i]
			sumSq += d * d
		}
		band := multiplier * math.Sqrt(sumSq/float64(period))
		upper[i] = middle[i] + band
		lower[i] = middle[i] - band
	}

	return BollingerResult{Upper: upper, Middle: middle, Lower: lower}
}
