package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockScope/internal/domain/models"
)

func bar(day int, close float64) models.PriceBar {
	return models.PriceBar{
		Ticker: "TEST",
		Date:   time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		Open:   close,
		High:   close,
		Low:    close,
		Close:  close,
		Volume: 1000,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregate(t *testing.T) {
	st, err := Aggregate([]models.PriceBar{bar(2, 100), bar(3, 110), bar(4, 90)})
	if err != nil {
		t.Fatalf("Aggregate err = %v", err)
	}
	if st.LatestClose != 90 {
		t.Fatalf("LatestClose = %v, want 90", st.LatestClose)
	}
	if st.PeriodHigh != 110 {
		t.Fatalf("PeriodHigh = %v, want 110", st.PeriodHigh)
	}
	if st.PeriodLow != 90 {
		t.Fatalf("PeriodLow = %v, want 90", st.PeriodLow)
	}
	if !almostEqual(st.PeriodReturnPct, -10.0) {
		t.Fatalf("PeriodReturnPct = %v, want -10.0", st.PeriodReturnPct)
	}
	if st.Bars != 3 {
		t.Fatalf("Bars = %d, want 3", st.Bars)
	}
	if !st.FirstDate.Equal(bar(2, 0).Date) || !st.LastDate.Equal(bar(4, 0).Date) {
		t.Fatalf("date range = %s..%s", st.FirstDate, st.LastDate)
	}
}

func TestAggregateSingleBar(t *testing.T) {
	st, err := Aggregate([]models.PriceBar{bar(2, 123.45)})
	if err != nil {
		t.Fatalf("Aggregate err = %v", err)
	}
	if st.LatestClose != 123.45 || st.PeriodHigh != 123.45 || st.PeriodLow != 123.45 {
		t.Fatalf("single bar stats = %+v", st)
	}
	if st.PeriodReturnPct != 0 {
		t.Fatalf("single-bar return = %v, want 0", st.PeriodReturnPct)
	}
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, models.ErrEmptySeries) {
		t.Fatalf("err = %v, want ErrEmptySeries", err)
	}
	_, err = Aggregate([]models.PriceBar{})
	if !errors.Is(err, models.ErrEmptySeries) {
		t.Fatalf("err = %v, want ErrEmptySeries", err)
	}
}

func TestAggregateZeroFirstClose(t *testing.T) {
	_, err := Aggregate([]models.PriceBar{bar(2, 0), bar(3, 50)})
	if !errors.Is(err, models.ErrZeroFirstClose) {
		t.Fatalf("err = %v, want ErrZeroFirstClose", err)
	}
}

func TestAggregateUsesClosesOnly(t *testing.T) {
	// Intraday highs and lows must not leak into period extremes.
	bars := []models.PriceBar{
		{Ticker: "TEST", Date: bar(2, 0).Date, Open: 99, High: 500, Low: 1, Close: 100, Volume: 1},
		{Ticker: "TEST", Date: bar(3, 0).Date, Open: 101, High: 600, Low: 2, Close: 105, Volume: 1},
	}
	st, err := Aggregate(bars)
	if err != nil {
		t.Fatalf("Aggregate err = %v", err)
	}
	if st.PeriodHigh != 105 || st.PeriodLow != 100 {
		t.Fatalf("extremes = %v/%v, want close-only 105/100", st.PeriodHigh, st.PeriodLow)
	}
}

func TestAggregatePositiveReturn(t *testing.T) {
	st, err := Aggregate([]models.PriceBar{bar(2, 80), bar(3, 100)})
	if err != nil {
		t.Fatalf("Aggregate err = %v", err)
	}
	if !almostEqual(st.PeriodReturnPct, 25.0) {
		t.Fatalf("PeriodReturnPct = %v, want 25.0", st.PeriodReturnPct)
	}
}
