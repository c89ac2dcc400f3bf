package period

import "errors"

var (
	ErrPayPeriodNotFound = errors.New("pay period not found")
	ErrInvalidPeriod     = errors.New("pay period has no expected hours or an empty date range")
	ErrPeriodOverlaps    = errors.New("pay period overlaps an existing period")
	ErrInvalidTransition = errors.New("invalid pay period status transition")
)
