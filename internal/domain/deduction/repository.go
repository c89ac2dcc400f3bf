package deduction

import (
	"context"

	"github.com/shopspring/decimal"
)

// DeductionRepository is the only writer of deduction balances besides the
// administrative CRUD that creates them. UpdateBalance is called inside the
// per-employee generation transaction so that a decrement can never be
// persisted without its matching deduction line.
type DeductionRepository interface {
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, isActive bool) error
}
