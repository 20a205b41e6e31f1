package quote

import (
	"context"
	"fmt"
	"net/url"

	"trading-monitor/internal/model"
)

// DefaultYahooBaseURL is the Yahoo Finance chart API root.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo fetches daily history and latest quotes from the Yahoo Finance v8
// chart API. It serves both the US and CN stock groups.
type Yahoo struct {
	client  *Client
	baseURL string
}

// NewYahoo creates a Yahoo adapter. baseURL "" uses the public endpoint.
func NewYahoo(client *Client, baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &Yahoo{client: client, baseURL: baseURL}
}

// chartResponse mirrors the subset of the chart API payload we read.
// Quote columns are pointer slices because Yahoo emits nulls mid-series.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				MarketState        string  `json:"marketState"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailySeries fetches ~6 months of daily bars for symbol.
func (y *Yahoo) DailySeries(ctx context.Context, symbol string) (*model.Bars, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=6mo", y.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	if err := y.client.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s - %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %s: empty chart result", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: %s: no quote columns", symbol)
	}
	q := result.Indicators.Quote[0]

	return &model.Bars{
		Timestamps: result.Timestamp,
		Open:       q.Open,
		High:       q.High,
		Low:        q.Low,
		Close:      q.Close,
		Volume:     q.Volume,
	}, nil
}

// LatestQuote holds the current price, session reference close and the
// trading-session state as reported by the upstream.
type LatestQuote struct {
	Price       float64
	PrevClose   float64
	MarketState string // "PRE", "REGULAR", "POST", "CLOSED" or ""
}

// Latest fetches the most recent price for symbol via the 1-minute chart.
func (y *Yahoo) Latest(ctx context.Context, symbol string) (*LatestQuote, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", y.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	if err := y.client.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s: %s - %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %s: empty chart result", symbol)
	}

	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: %s: no market price in meta", symbol)
	}

	prevClose := meta.PreviousClose
	if prevClose == 0 {
		prevClose = meta.ChartPreviousClose
	}

	return &LatestQuote{
		Price:       meta.RegularMarketPrice,
		PrevClose:   prevClose,
		MarketState: meta.MarketState,
	}, nil
}
