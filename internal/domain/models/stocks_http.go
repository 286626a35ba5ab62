package models

// Requests and wire shapes for the stocks HTTP endpoints. Defined in domain for
// consistency and reuse. The json field names and the period tokens are a
// compatibility contract with the existing frontend; do not rename them.

type SearchRequest struct {
	Query string `query:"q" json:"q"`
	Limit int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}

type PricesRequest struct {
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1y 2y 5y"`
}

type SummaryRequest struct {
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1y 2y 5y"`
}

// StockListItem is one row of the full listing.
type StockListItem struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// SearchResult is one ranked search match.
type SearchResult struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// StockDetail is the full metadata for one ticker.
type StockDetail struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// PriceBarItem is one daily bar on the wire, date as YYYY-MM-DD.
type PriceBarItem struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// SummaryResponse carries the period statistics for one ticker.
type SummaryResponse struct {
	Ticker          string  `json:"ticker"`
	Period          string  `json:"period"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Bars            int     `json:"bars"`
	LatestClose     float64 `json:"latest_close"`
	PeriodHigh      float64 `json:"period_high"`
	PeriodLow       float64 `json:"period_low"`
	PeriodReturnPct float64 `json:"period_return_pct"`
}

// StatsResponse describes the dataset; latest_date is null when empty.
type StatsResponse struct {
	Stocks     int64   `json:"stocks"`
	PriceRows  int64   `json:"price_rows"`
	LatestDate *string `json:"latest_date"`
}

const dateLayout = "2006-01-02"

// NewStockDetail maps a Stock to its wire shape.
func NewStockDetail(s *Stock) *StockDetail {
	return &StockDetail{
		Ticker:   s.Ticker,
		Name:     s.Name,
		Sector:   s.Sector,
		Industry: s.Industry,
	}
}

// NewStockList maps stocks to listing rows. Always returns a non-nil slice so
// an empty dataset serializes as [].
func NewStockList(stocks []Stock) []StockListItem {
	items := make([]StockListItem, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, StockListItem{Ticker: s.Ticker, Name: s.Name})
	}
	return items
}

// NewPriceBarItems maps bars to their wire shape. Always returns a non-nil
// slice so an empty range serializes as [].
func NewPriceBarItems(bars []PriceBar) []PriceBarItem {
	items := make([]PriceBarItem, 0, len(bars))
	for _, b := range bars {
		items = append(items, PriceBarItem{
			Date:   b.Date.UTC().Format(dateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return items
}

// NewSummaryResponse maps period stats to their wire shape.
func NewSummaryResponse(ticker, period string, st *PeriodStats) *SummaryResponse {
	return &SummaryResponse{
		Ticker:          ticker,
		Period:          period,
		StartDate:       st.FirstDate.UTC().Format(dateLayout),
		EndDate:         st.LastDate.UTC().Format(dateLayout),
		Bars:            st.Bars,
		LatestClose:     st.LatestClose,
		PeriodHigh:      st.PeriodHigh,
		PeriodLow:       st.PeriodLow,
		PeriodReturnPct: st.PeriodReturnPct,
	}
}

// NewStatsResponse maps dataset totals to their wire shape.
func NewStatsResponse(t *DatasetTotals) *StatsResponse {
	resp := &StatsResponse{
		Stocks:    t.Stocks,
		PriceRows: t.PriceRows,
	}
	if t.LatestDate != nil {
		s := t.LatestDate.UTC().Format(dateLayout)
		resp.LatestDate = &s
	}
	return resp
}
