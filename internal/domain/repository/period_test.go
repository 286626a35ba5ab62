package repository

import (
	"errors"
	"testing"
	"time"

	"StockScope/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	for _, tok := range []string{"1y", "2y", "5y"} {
		p, err := ParsePeriod(tok)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) err = %v", tok, err)
		}
		if string(p) != tok {
			t.Fatalf("ParsePeriod(%q) = %q", tok, p)
		}
	}
}

func TestParsePeriodRejectsUnknown(t *testing.T) {
	for _, tok := range []string{"", "3y", "1Y", "1m", "max", "1y "} {
		_, err := ParsePeriod(tok)
		if err == nil {
			t.Fatalf("ParsePeriod(%q) expected error", tok)
		}
		if !errors.Is(err, models.ErrInvalidPeriod) {
			t.Fatalf("ParsePeriod(%q) err = %v, want ErrInvalidPeriod", tok, err)
		}
	}
}

func TestDefaultPeriod(t *testing.T) {
	if got := DefaultPeriod(); got != Period1Y {
		t.Fatalf("DefaultPeriod() = %q", got)
	}
}

func TestPeriodYears(t *testing.T) {
	cases := map[Period]int{Period1Y: 1, Period2Y: 2, Period5Y: 5}
	for p, want := range cases {
		if got := p.Years(); got != want {
			t.Fatalf("%q.Years() = %d, want %d", p, got, want)
		}
	}
}

func TestStartFrom(t *testing.T) {
	asOf := date(2024, time.June, 15)

	if got := Period1Y.StartFrom(asOf); !got.Equal(date(2023, time.June, 15)) {
		t.Fatalf("1y start = %s", got)
	}
	if got := Period2Y.StartFrom(asOf); !got.Equal(date(2022, time.June, 15)) {
		t.Fatalf("2y start = %s", got)
	}
	if got := Period5Y.StartFrom(asOf); !got.Equal(date(2019, time.June, 15)) {
		t.Fatalf("5y start = %s", got)
	}
}

func TestStartFromLeapDay(t *testing.T) {
	// 2023 has no Feb 29; AddDate rolls it forward to Mar 1.
	got := Period1Y.StartFrom(date(2024, time.February, 29))
	if !got.Equal(date(2023, time.March, 1)) {
		t.Fatalf("leap day start = %s, want 2023-03-01", got)
	}
}
