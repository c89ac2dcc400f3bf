package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a recurring deduction being paid down in monthly installments,
// e.g. a salary loan or an equipment charge. RemainingBalance is decremented
// by the engine each time a pay period is generated and stays within
// [0, OriginalAmount] at all times.
type Balance struct {
	ID                 string
	EmployeeID         string
	DeductionTypeID    string
	OriginalAmount     decimal.Decimal
	RemainingBalance   decimal.Decimal
	MonthlyInstallment decimal.Decimal
	StartDate          time.Time
	EndDate            *time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	TypeName string
}
