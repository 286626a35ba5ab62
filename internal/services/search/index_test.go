package search

import (
	"testing"

	"StockScope/internal/domain/models"
)

func testIndex() *Index {
	return NewIndex([]models.Stock{
		{Ticker: "MSFT", Name: "Microsoft", Sector: "Information Technology"},
		{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
		{Ticker: "GOOGL", Name: "Alphabet Inc. (Class A)", Sector: "Communication Services"},
		{Ticker: "AMZN", Name: "Amazon", Sector: "Consumer Discretionary"},
		{Ticker: "APA", Name: "APA Corporation", Sector: "Energy"},
		{Ticker: "T", Name: "AT&T", Sector: "Communication Services"},
	})
}

func tickers(results []models.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Ticker)
	}
	return out
}

func TestQueryExactTickerFirst(t *testing.T) {
	// "AAPL" also substring-matches "Apple Inc." by name; the exact
	// ticker hit must come first regardless.
	got := testIndex().Query("AAPL", 20)
	if len(got) == 0 || got[0].Ticker != "AAPL" {
		t.Fatalf("Query(AAPL) = %v, want AAPL first", tickers(got))
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	upper := testIndex().Query("MICRO", 20)
	lower := testIndex().Query("micro", 20)
	if len(upper) != 1 || len(lower) != 1 || upper[0].Ticker != "MSFT" {
		t.Fatalf("case-insensitive match failed: %v vs %v", tickers(upper), tickers(lower))
	}
}

func TestQueryRankOrder(t *testing.T) {
	// "a" ranks ticker prefixes (AAPL, AMZN, APA in ticker order)
	// ahead of ticker substrings and name-only matches.
	got := tickers(testIndex().Query("a", 20))
	want := []string{"AAPL", "AMZN", "APA"}
	if len(got) < len(want) {
		t.Fatalf("Query(a) = %v", got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Query(a) = %v, want prefix order %v", got, want)
		}
	}
	// Name-only matches (Alphabet, AT&T via name) follow the ticker buckets.
	for _, tk := range got[len(want):] {
		for _, w := range want {
			if tk == w {
				t.Fatalf("duplicate result %s in %v", tk, got)
			}
		}
	}
}

func TestQueryMatchesName(t *testing.T) {
	got := testIndex().Query("alphabet", 20)
	if len(got) != 1 || got[0].Ticker != "GOOGL" {
		t.Fatalf("Query(alphabet) = %v", tickers(got))
	}
}

func TestQueryEmpty(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		got := testIndex().Query(q, 20)
		if got == nil {
			t.Fatalf("Query(%q) returned nil, want empty slice", q)
		}
		if len(got) != 0 {
			t.Fatalf("Query(%q) = %v, want empty", q, tickers(got))
		}
	}
}

func TestQueryNoMatch(t *testing.T) {
	if got := testIndex().Query("zzzzz", 20); len(got) != 0 {
		t.Fatalf("Query(zzzzz) = %v", tickers(got))
	}
}

func TestQueryLimit(t *testing.T) {
	got := testIndex().Query("a", 2)
	if len(got) != 2 {
		t.Fatalf("Query(a, 2) returned %d results", len(got))
	}
	if got[0].Ticker != "AAPL" || got[1].Ticker != "AMZN" {
		t.Fatalf("Query(a, 2) = %v", tickers(got))
	}
}

func TestQueryDefaultLimit(t *testing.T) {
	stocks := make([]models.Stock, 0, 30)
	for i := 0; i < 30; i++ {
		stocks = append(stocks, models.Stock{
			Ticker: string(rune('A'+i%26)) + string(rune('A'+i/26)) + "X",
			Name:   "Test Co",
		})
	}
	got := NewIndex(stocks).Query("test", 0)
	if len(got) != DefaultLimit {
		t.Fatalf("Query with limit 0 returned %d, want %d", len(got), DefaultLimit)
	}
}

func TestQueryDeterministic(t *testing.T) {
	first := tickers(testIndex().Query("a", 20))
	for i := 0; i < 5; i++ {
		again := tickers(testIndex().Query("a", 20))
		if len(again) != len(first) {
			t.Fatalf("result count varies: %v vs %v", first, again)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("result order varies: %v vs %v", first, again)
			}
		}
	}
}
