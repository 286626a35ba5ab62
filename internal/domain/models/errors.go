package models

import "errors"

// Sentinel errors shared across usecases and handlers. The HTTP layer maps
// each to its status; none of them is fatal to the process.
var (
	ErrStockNotFound  = errors.New("stock not found")
	ErrInvalidPeriod  = errors.New("invalid period token")
	ErrEmptySeries    = errors.New("empty price series")
	ErrZeroFirstClose = errors.New("period return undefined: first close is zero")
	ErrNoPriceData    = errors.New("no price data")
)
