package deduction

import "errors"

var (
	ErrBalanceNotFound = errors.New("deduction balance not found")
)
