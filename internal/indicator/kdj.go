package indicator

// KDJResult holds the K, D and J series of the stochastic KDJ oscillator.
type KDJResult struct {
	K Series `json:"k"`
	D Series `json:"d"`
	J Series `json:"j"`
}

// KDJ computes the KDJ oscillator over aligned high/low/close series.
// The first n-1 positions are undefined; before the first defined index the
// recurrence is seeded with prevK = prevD = 50. RSV is pinned at 100 when
// the trailing window is flat (highest high equals lowest low). The fold
// carries state index to index, so it runs strictly in ascending time order.
func KDJ(highs, lows, closes []float64, n, m1, m2 int) KDJResult {
	length := len(closes)
	k := newUndefined(length)
	d := newUndefined(length)
	j := newUndefined(length)

	prevK, prevD := 50.0, 50.0
	for i := 0; i < length; i++ {
		if i < n-1 {
			continue
		}
		highest := highs[i-n+1]
		lowest := lows[i-n+1]
		for w := i - n + 2; w <= i; w++ {
			if highs[w] > highest {
				highest = highs[w]
			}
			if lows[w] < lowest {
				lowest = lows[w]
			}
		}

		rsv := 100.0
		if highest != lowest {
			rsv = (closes[i] - lowest) / (highest - lowest) * 100.0
		}

		curK := (2.0/float64(m1))*rsv + (float64(m1-2)/float64(m1))*prevK
		curD := (2.0/float64(m2))*curK + (float64(m2-2)/float64(m2))*prevD
		k[i] = curK
		d[i] = curD
		j[i] = 3*curK - 2*curD

		prevK, prevD = curK, curD
	}

	return KDJResult{K: k, D: d, J: j}
}
