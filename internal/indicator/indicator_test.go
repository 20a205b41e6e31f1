package indicator

import (
	"encoding/json"
	"math"
	"testing"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tol }

func TestSMAKnownValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	out := SMA(x, 3)

	if Defined(out[0]) || Defined(out[1]) {
		t.Fatalf("positions before the window must be undefined, got %v", out[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !approx(out[i+2], w) {
			t.Errorf("SMA[%d] = %v, want %v", i+2, out[i+2], w)
		}
	}
}

func TestSMAPeriodLongerThanInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 5)
	for i, v := range out {
		if Defined(v) {
			t.Errorf("SMA[%d] = %v, want undefined", i, v)
		}
	}
}

func TestEMASeededFromFirstValue(t *testing.T) {
	x := []float64{10, 11, 12, 13}
	out := EMA(x, 3)

	if !approx(out[0], 10) {
		t.Fatalf("EMA[0] = %v, want the first input value", out[0])
	}
	// k = 0.5 for period 3
	if !approx(out[1], 10.5) {
		t.Errorf("EMA[1] = %v, want 10.5", out[1])
	}
	for i, v := range out {
		if !Defined(v) {
			t.Errorf("EMA[%d] undefined, want defined everywhere", i)
		}
	}
}

func TestRSITooShortIsAllUndefined(t *testing.T) {
	closes := make([]float64, 11)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	out := RSI(closes, 14)
	if len(out) != len(closes) {
		t.Fatalf("length %d, want %d", len(out), len(closes))
	}
	for i, v := range out {
		if Defined(v) {
			t.Errorf("RSI[%d] = %v, want undefined for a short series", i, v)
		}
	}
}

func TestRSIWarmupAndSaturation(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i) // strictly rising
	}
	out := RSI(closes, 14)

	for i := 0; i < 14; i++ {
		if Defined(out[i]) {
			t.Errorf("RSI[%d] defined during warm-up", i)
		}
	}
	// Zero average loss pins RS at 100: 100 - 100/101.
	want := 100.0 - 100.0/101.0
	for i := 14; i < len(out); i++ {
		if !approx(out[i], want) {
			t.Errorf("RSI[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestRSIWilderSmoothing(t *testing.T) {
	closes := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.1,
		45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28}
	out := RSI(closes, 14)

	v := out[14]
	if !Defined(v) {
		t.Fatal("RSI[14] undefined, want seed value")
	}
	if v < 60 || v > 80 {
		t.Errorf("RSI[14] = %v, want a value in the overbought-ish 60..80 band", v)
	}
}

func TestMACDHistogramIdentity(t *testing.T) {
	x := make([]float64, 60)
	for i := range x {
		x[i] = 100 + 5*math.Sin(float64(i)/5)
	}
	res := MACD(x, 12, 26, 9)

	for i := range x {
		if !approx(res.Histogram[i], res.MACD[i]-res.Signal[i]) {
			t.Fatalf("histogram[%d] != macd-signal", i)
		}
	}
	wantMACD := EMA(x, 12)[30] - EMA(x, 26)[30]
	if !approx(res.MACD[30], wantMACD) {
		t.Errorf("MACD[30] = %v, want %v", res.MACD[30], wantMACD)
	}
}

func TestBollingerBands(t *testing.T) {
	x := make([]float64, 30)
	for i := range x {
		x[i] = float64(10 + i%5)
	}
	res := Bollinger(x, 20, 2)

	for i := 0; i < 19; i++ {
		if Defined(res.Upper[i]) || Defined(res.Middle[i]) || Defined(res.Lower[i]) {
			t.Errorf("band defined at %d inside warm-up", i)
		}
	}
	for i := 19; i < len(x); i++ {
		if !approx(res.Upper[i]+res.Lower[i], 2*res.Middle[i]) {
			t.Errorf("bands not symmetric around middle at %d", i)
		}
		if res.Upper[i] < res.Middle[i] || res.Lower[i] > res.Middle[i] {
			t.Errorf("band ordering broken at %d", i)
		}
	}
}

func TestBollingerConstantSeriesCollapses(t *testing.T) {
	x := make([]float64, 25)
	for i := range x {
		x[i] = 50
	}
	res := Bollinger(x, 20, 2)
	if !approx(res.Upper[24], 50) || !approx(res.Lower[24], 50) {
		t.Errorf("constant input must collapse bands onto the middle, got [%v, %v]", res.Lower[24], res.Upper[24])
	}
}

func TestKDJFlatWindowAndIdentity(t *testing.T) {
	n := 12
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := range highs {
		highs[i], lows[i], closes[i] = 5, 5, 5
	}
	res := KDJ(highs, lows, closes, 9, 3, 3)

	for i := 0; i < 8; i++ {
		if Defined(res.K[i]) {
			t.Errorf("K[%d] defined during warm-up", i)
		}
	}
	// Flat window pins RSV at 100; first K folds it against the 50 seed.
	wantK := (2.0/3.0)*100 + (1.0/3.0)*50
	if !approx(res.K[8], wantK) {
		t.Errorf("K[8] = %v, want %v", res.K[8], wantK)
	}
	for i := 8; i < n; i++ {
		if !approx(res.J[i], 3*res.K[i]-2*res.D[i]) {
			t.Errorf("J != 3K-2D at %d", i)
		}
	}
}

func TestKDJMovesWithClose(t *testing.T) {
	n := 15
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := range highs {
		highs[i] = 10
		lows[i] = 0
		closes[i] = 10 // closing at the high
	}
	res := KDJ(highs, lows, closes, 9, 3, 3)
	if last, ok := res.K.Last(); !ok || last < 90 {
		t.Errorf("K = %v, want convergence toward 100 when closing at highs", last)
	}
}

func TestSeriesMarshalUndefinedAsNull(t *testing.T) {
	s := Series{1.5, Undefined(), 3, math.Inf(1)}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[1.5,null,3,null]" {
		t.Errorf("marshal = %s", b)
	}
}

func TestSeriesLastPrev(t *testing.T) {
	s := Series{1, 2, Undefined()}
	if _, ok := s.Last(); ok {
		t.Error("Last defined for undefined tail")
	}
	if v, ok := s.Prev(); !ok || v != 2 {
		t.Errorf("Prev = %v/%v, want 2/true", v, ok)
	}
	if _, ok := (Series{}).Last(); ok {
		t.Error("Last defined for empty series")
	}
}
