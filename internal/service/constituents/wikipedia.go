package constituents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"StockScope/internal/domain/models"
	"StockScope/pkg/config"
	xhttp "StockScope/pkg/http"
)

// Wikipedia serves the page to browsers only; the default Go user agent
// gets blocked, so requests carry a full browser string.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Client scrapes the S&P 500 constituent table from Wikipedia.
type Client struct {
	url       string
	userAgent string
	http      *xhttp.Client
}

// New builds a scraper from the constituents config section.
func New(cfg *config.Config) *Client {
	ua := cfg.Constituents.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	timeout := cfg.Constituents.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:       cfg.Constituents.URL,
		userAgent: ua,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// FetchConstituents returns the current index membership. Tickers come back
// in Yahoo notation: share-class dots become dashes (BRK.B -> BRK-B).
func (c *Client) FetchConstituents(ctx context.Context) ([]models.Stock, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.url,
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	table := doc.Find("table#constituents").First()
	if table.Length() == 0 {
		table = doc.Find("table.wikitable").First()
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("parse constituents page: no table found")
	}

	var stocks []models.Stock
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		tds := row.Find("td")
		if tds.Length() < 4 {
			return
		}

		ticker := cleanTicker(tds.Eq(0).Text())
		if ticker == "" {
			return
		}
		stocks = append(stocks, models.Stock{
			Ticker:   ticker,
			Name:     strings.TrimSpace(tds.Eq(1).Text()),
			Sector:   strings.TrimSpace(tds.Eq(2).Text()),
			Industry: strings.TrimSpace(tds.Eq(3).Text()),
		})
	})

	if len(stocks) == 0 {
		return nil, fmt.Errorf("parse constituents page: no rows parsed")
	}
	return stocks, nil
}

func cleanTicker(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ".", "-")
}
