package search

import (
	"sort"
	"strings"

	"StockScope/internal/domain/models"
)

// DefaultLimit caps result sets when the caller does not ask for a size.
const DefaultLimit = 20

// Index answers substring queries over tickers and company names.
// It is immutable after construction and safe for concurrent readers.
type Index struct {
	entries []entry
}

type entry struct {
	stock       models.Stock
	tickerLower string
	nameLower   string
}

// Match ranks, lower is better. Ticker matches always beat name matches.
const (
	rankTickerExact = iota
	rankTickerPrefix
	rankTickerSubstring
	rankNameSubstring
	rankNone
)

// NewIndex builds an index over the given stocks. Entries are held in
// ascending ticker order so equal-rank matches come out deterministic.
func NewIndex(stocks []models.Stock) *Index {
	entries := make([]entry, 0, len(stocks))
	for _, s := range stocks {
		entries = append(entries, entry{
			stock:       s,
			tickerLower: strings.ToLower(s.Ticker),
			nameLower:   strings.ToLower(s.Name),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].stock.Ticker < entries[j].stock.Ticker
	})
	return &Index{entries: entries}
}

// Query returns up to limit stocks whose ticker or name contains q,
// case-insensitive. An empty or whitespace-only query returns no results.
func (ix *Index) Query(q string, limit int) []models.SearchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return []models.SearchResult{}
	}

	type match struct {
		rank  int
		entry *entry
	}
	matches := make([]match, 0, limit)
	for i := range ix.entries {
		e := &ix.entries[i]
		if r := e.rank(needle); r != rankNone {
			matches = append(matches, match{rank: r, entry: e})
		}
	}

	// Entries were sorted by ticker at build time; a stable sort by rank
	// keeps that order within each rank bucket.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchResult{
			Ticker: m.entry.stock.Ticker,
			Name:   m.entry.stock.Name,
			Sector: m.entry.stock.Sector,
		})
	}
	return results
}

// Len reports how many stocks the index covers.
func (ix *Index) Len() int { return len(ix.entries) }

func (e *entry) rank(needle string) int {
	switch {
	case e.tickerLower == needle:
		return rankTickerExact
	case strings.HasPrefix(e.tickerLower, needle):
		return rankTickerPrefix
	case strings.Contains(e.tickerLower, needle):
		return rankTickerSubstring
	case strings.Contains(e.nameLower, needle):
		return rankNameSubstring
	default:
		return rankNone
	}
}
