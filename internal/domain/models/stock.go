package models

import "time"

// Stock is the reference record for one listed company. Immutable for the API
// process; only the ingest command writes it.
type Stock struct {
	Ticker   string
	Name     string
	Sector   string
	Industry string
}

// PriceBar represents one daily OHLCV record. Unique per (Ticker, Date),
// ascending by Date within a ticker.
type PriceBar struct {
	Ticker string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PeriodStats summarizes a price series. All aggregates are computed over
// closing prices only; intraday extremes never feed them.
type PeriodStats struct {
	LatestClose     float64
	PeriodHigh      float64
	PeriodLow       float64
	PeriodReturnPct float64
	FirstDate       time.Time
	LastDate        time.Time
	Bars            int
}

// DatasetTotals describes the loaded dataset. LatestDate is nil when no price
// rows exist yet.
type DatasetTotals struct {
	Stocks     int64
	PriceRows  int64
	LatestDate *time.Time
}

// IngestReport is the outcome of one ingest run.
type IngestReport struct {
	Stocks         int64
	TickersFetched int64
	TickersFailed  int64
	BarsInserted   int64
	Duration       time.Duration
}
