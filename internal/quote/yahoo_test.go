package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {
        "regularMarketPrice": 191.5,
        "previousClose": 190.0,
        "chartPreviousClose": 150.0,
        "marketState": "REGULAR"
      },
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [101.0, null, 103.0],
          "low":    [99.0,  null, 101.0],
          "close":  [100.5, null, 102.5],
          "volume": [1000, null, 1200]
        }]
      }
    }],
    "error": null
  }
}`

func yahooServer(t *testing.T, handler http.HandlerFunc) *Yahoo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYahoo(NewClient(2*time.Second), srv.URL)
}

func TestYahooDailySeries(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("interval = %s", got)
		}
		w.Write([]byte(chartBody))
	})

	bars, err := y.DailySeries(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if bars.Len() != 3 {
		t.Fatalf("len = %d", bars.Len())
	}
	if bars.Close[1] != nil {
		t.Error("null close must stay nil")
	}
	if bars.Close[2] == nil || *bars.Close[2] != 102.5 {
		t.Errorf("close[2] = %v", bars.Close[2])
	}
}

func TestYahooDailySeriesUpstreamError(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	})
	if _, err := y.DailySeries(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected an error for an upstream error payload")
	}
}

func TestYahooDailySeriesHTTPError(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})
	if _, err := y.DailySeries(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected an error for a non-2xx status")
	}
}

func TestYahooLatest(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1m" {
			t.Errorf("interval = %s", got)
		}
		w.Write([]byte(chartBody))
	})

	q, err := y.Latest(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if q.Price != 191.5 || q.PrevClose != 190.0 || q.MarketState != "REGULAR" {
		t.Errorf("quote = %+v", q)
	}
}

func TestYahooLatestFallsBackToChartPreviousClose(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":10.0,"chartPreviousClose":9.0}}],"error":null}}`))
	})
	q, err := y.Latest(context.Background(), "600519.SS")
	if err != nil {
		t.Fatal(err)
	}
	if q.PrevClose != 9.0 {
		t.Errorf("prevClose = %v, want the chart fallback", q.PrevClose)
	}
}

func TestYahooLatestMissingPrice(t *testing.T) {
	y := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{}}],"error":null}}`))
	})
	if _, err := y.Latest(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected an error when the meta carries no price")
	}
}
