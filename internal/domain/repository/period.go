package repository

import (
	"fmt"
	"time"

	"StockScope/internal/domain/models"
)

// Period is a symbolic lookback window over daily bars.
type Period string

const (
	Period1Y Period = "1y"
	Period2Y Period = "2y"
	Period5Y Period = "5y"
)

// IsValidPeriod returns true if p is a supported period token.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period1Y, Period2Y, Period5Y:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the period used when a client omits the parameter.
func DefaultPeriod() Period { return Period1Y }

// ParsePeriod converts a raw token to a Period. Unknown tokens fail with
// models.ErrInvalidPeriod; there is no silent defaulting here.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !IsValidPeriod(p) {
		return "", fmt.Errorf("%w: %q (valid: 1y, 2y, 5y)", models.ErrInvalidPeriod, s)
	}
	return p, nil
}

// Years returns the calendar span of the period.
func (p Period) Years() int {
	switch p {
	case Period2Y:
		return 2
	case Period5Y:
		return 5
	default:
		return 1
	}
}

// StartFrom resolves the inclusive start date: asOf minus the exact calendar
// span. AddDate normalizes Feb 29 minus one year to Mar 1.
func (p Period) StartFrom(asOf time.Time) time.Time {
	return asOf.AddDate(-p.Years(), 0, 0)
}
