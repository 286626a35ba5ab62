package constituents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/pkg/config"
)

const pageFixture = `<html><body>
<table id="constituents" class="wikitable sortable">
<tbody>
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th><th>GICS Sub-Industry</th><th>HQ</th></tr>
<tr><td><a href="/wiki/Apple">AAPL</a></td><td>Apple Inc.</td><td>Information Technology</td><td>Technology Hardware</td><td>Cupertino</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td><td>Multi-Sector Holdings</td><td>Omaha</td></tr>
<tr><td> msft </td><td>Microsoft</td><td>Information Technology</td><td>Systems Software</td><td>Redmond</td></tr>
</tbody>
</table>
</body></html>`

func testConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Constituents.URL = url
	return cfg
}

func TestFetchConstituents(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(pageFixture))
	}))
	defer srv.Close()

	stocks, err := New(testConfig(srv.URL)).FetchConstituents(context.Background())
	require.NoError(t, err)
	require.Len(t, stocks, 3)

	assert.Contains(t, gotUA, "Mozilla", "must present a browser user agent")

	assert.Equal(t, "AAPL", stocks[0].Ticker)
	assert.Equal(t, "Apple Inc.", stocks[0].Name)
	assert.Equal(t, "Information Technology", stocks[0].Sector)
	assert.Equal(t, "Technology Hardware", stocks[0].Industry)

	assert.Equal(t, "BRK-B", stocks[1].Ticker, "share-class dots become dashes")
	assert.Equal(t, "MSFT", stocks[2].Ticker, "tickers are trimmed and uppercased")
}

func TestFetchConstituentsNoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL)).FetchConstituents(context.Background())
	require.Error(t, err)
}

func TestFetchConstituentsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL)).FetchConstituents(context.Background())
	require.Error(t, err)
}
