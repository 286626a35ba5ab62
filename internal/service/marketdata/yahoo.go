package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"StockScope/internal/domain/models"
	"StockScope/pkg/config"
	xhttp "StockScope/pkg/http"
	"StockScope/pkg/util"
)

const defaultUserAgent = "Mozilla/5.0"

// Client fetches daily OHLCV history from the Yahoo Finance v8 chart API.
type Client struct {
	baseURL   string
	lookback  string
	interval  string
	userAgent string
	http      *xhttp.Client
}

// New builds a chart client from the marketdata config section.
func New(cfg *config.Config) *Client {
	ua := cfg.MarketData.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := cfg.MarketData.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL:   cfg.MarketData.BaseURL,
		lookback:  cfg.MarketData.Lookback,
		interval:  cfg.MarketData.Interval,
		userAgent: ua,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// chartResponse mirrors the subset of the v8 chart payload we read.
// Quote arrays carry null entries for holidays and halts, hence pointers.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars returns the configured lookback of daily bars for ticker,
// ascending by date. Bars without a close are dropped, matching how the
// dataset treats non-trading days.
func (c *Client) FetchDailyBars(ctx context.Context, ticker string) ([]models.PriceBar, error) {
	var chart chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"interval": {c.interval},
			"range":    {c.lookback},
			"events":   {"history"},
		},
	}, &chart)
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", ticker, err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart api %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart api %s: empty result", ticker)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closeVal := at(quote.Close, i)
		if closeVal == nil {
			continue
		}
		b := models.PriceBar{
			Ticker: ticker,
			Date:   util.DateOnly(time.Unix(ts, 0).UTC()),
			Close:  *closeVal,
		}
		// Missing opens and extremes fall back to the close.
		b.Open = orClose(at(quote.Open, i), *closeVal)
		b.High = orClose(at(quote.High, i), *closeVal)
		b.Low = orClose(at(quote.Low, i), *closeVal)
		if v := atInt(quote.Volume, i); v != nil {
			b.Volume = *v
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func atInt(vals []*int64, i int) *int64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func orClose(v *float64, close float64) float64 {
	if v != nil {
		return *v
	}
	return close
}
