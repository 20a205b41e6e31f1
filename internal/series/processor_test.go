package series

import (
	"math"
	"testing"

	"trading-monitor/internal/model"
)

func ptr(v float64) *float64 { return &v }

func barsFromCloses(closes []*float64) *model.Bars {
	ts := make([]int64, len(closes))
	for i := range ts {
		ts[i] = int64(1700000000 + i*86400)
	}
	return &model.Bars{
		Timestamps: ts,
		Open:       make([]*float64, len(closes)),
		High:       make([]*float64, len(closes)),
		Low:        make([]*float64, len(closes)),
		Close:      closes,
		Volume:     make([]*float64, len(closes)),
	}
}

func TestEnrichNilAndEmpty(t *testing.T) {
	if Enrich(nil) != nil {
		t.Error("nil bars must yield nil")
	}
	if Enrich(&model.Bars{}) != nil {
		t.Error("empty bars must yield nil")
	}
	if Enrich(barsFromCloses([]*float64{nil, nil, nil})) != nil {
		t.Error("all-null closes must yield nil")
	}
}

func TestEnrichDropsNullCloses(t *testing.T) {
	nan := math.NaN()
	closes := []*float64{ptr(10), nil, ptr(12), &nan, ptr(14)}
	snap := Enrich(barsFromCloses(closes))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}

	want := []float64{10, 12, 14}
	if len(snap.OHLCV.Close) != len(want) {
		t.Fatalf("kept %d bars, want %d", len(snap.OHLCV.Close), len(want))
	}
	for i, w := range want {
		if snap.OHLCV.Close[i] != w {
			t.Errorf("close[%d] = %v, want %v", i, snap.OHLCV.Close[i], w)
		}
	}
	if len(snap.Timestamps) != 3 {
		t.Errorf("timestamps not filtered alongside closes: %d", len(snap.Timestamps))
	}
	if len(snap.RSI) != 3 {
		t.Errorf("indicator length %d, want aligned with kept bars", len(snap.RSI))
	}
}

func TestEnrichBackfillsMissingFields(t *testing.T) {
	bars := barsFromCloses([]*float64{ptr(10), ptr(20)})
	bars.Open[0] = ptr(9)
	bars.High[1] = ptr(0) // zero treated as missing
	snap := Enrich(bars)
	if snap == nil {
		t.Fatal("expected a snapshot")
	}

	if snap.OHLCV.Open[0] != 9 {
		t.Errorf("open[0] = %v, want the reported 9", snap.OHLCV.Open[0])
	}
	if snap.OHLCV.Open[1] != 20 {
		t.Errorf("open[1] = %v, want back-filled close", snap.OHLCV.Open[1])
	}
	if snap.OHLCV.High[1] != 20 {
		t.Errorf("high[1] = %v, want zero replaced by close", snap.OHLCV.High[1])
	}
	if snap.OHLCV.Volume[0] != 0 {
		t.Errorf("volume[0] = %v, want 0 for missing volume", snap.OHLCV.Volume[0])
	}
}

func TestEnrichChangeFigures(t *testing.T) {
	snap := Enrich(barsFromCloses([]*float64{ptr(100), ptr(110)}))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.CurrentPrice != 110 || snap.PrevClose != 100 {
		t.Fatalf("price/prevClose = %v/%v", snap.CurrentPrice, snap.PrevClose)
	}
	if snap.Change != 10 || math.Abs(snap.ChangePct-10) > 1e-9 {
		t.Errorf("change = %v (%v%%), want 10 (10%%)", snap.Change, snap.ChangePct)
	}
}

func TestEnrichSingleBar(t *testing.T) {
	snap := Enrich(barsFromCloses([]*float64{ptr(42)}))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.PrevClose != 42 || snap.Change != 0 || snap.ChangePct != 0 {
		t.Errorf("single bar must report zero change, got %v/%v", snap.Change, snap.ChangePct)
	}
}

func TestEnrichZeroPrevCloseNoDivide(t *testing.T) {
	snap := Enrich(barsFromCloses([]*float64{ptr(0), ptr(5)}))
	if snap == nil {
		t.Fatal("expected a snapshot")
	}
	if snap.ChangePct != 0 {
		t.Errorf("changePct = %v, want 0 when prevClose is 0", snap.ChangePct)
	}
}
