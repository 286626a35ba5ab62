package stats

import (
	"StockScope/internal/domain/models"
)

// Aggregate summarizes a period of daily bars using closing prices only.
// Bars must be in ascending date order, the order repositories return them.
//
// The return percentage is (latest - first) / first * 100. A single bar
// yields 0. A first close of zero makes the ratio undefined, so that case
// fails with models.ErrZeroFirstClose instead of emitting Inf or NaN.
func Aggregate(bars []models.PriceBar) (*models.PeriodStats, error) {
	if len(bars) == 0 {
		return nil, models.ErrEmptySeries
	}

	first := bars[0]
	last := bars[len(bars)-1]

	high := first.Close
	low := first.Close
	for _, b := range bars[1:] {
		if b.Close > high {
			high = b.Close
		}
		if b.Close < low {
			low = b.Close
		}
	}

	if first.Close == 0 {
		return nil, models.ErrZeroFirstClose
	}
	returnPct := (last.Close - first.Close) / first.Close * 100

	return &models.PeriodStats{
		LatestClose:     last.Close,
		PeriodHigh:      high,
		PeriodLow:       low,
		PeriodReturnPct: returnPct,
		FirstDate:       first.Date,
		LastDate:        last.Date,
		Bars:            len(bars),
	}, nil
}
