package payroll

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// Installment is one period's amortization step for one balance.
type Installment struct {
	BalanceID       string
	DeductionTypeID string
	Name            string
	Amount          decimal.Decimal
	NewRemaining    decimal.Decimal
	Active          bool
}

// DeductionAmortizer computes this period's installment for each active
// recurring deduction balance. It never drives a balance negative and never
// touches a balance that is inactive or already at zero; the clamp to the
// remaining balance is designed behavior, not an error.
type DeductionAmortizer struct{}

// Amortize returns the installments to apply plus their total. Balances not
// represented in the result are left untouched.
func (DeductionAmortizer) Amortize(balances []deduction.Balance) ([]Installment, decimal.Decimal) {
	var installments []Installment
	total := decimal.Zero

	for _, b := range balances {
		if !b.IsActive || !b.RemainingBalance.IsPositive() {
			continue
		}

		amount := decimal.Min(b.MonthlyInstallment, b.RemainingBalance)
		if !amount.IsPositive() {
			continue
		}

		remaining := b.RemainingBalance.Sub(amount)
		installments = append(installments, Installment{
			BalanceID:       b.ID,
			DeductionTypeID: b.DeductionTypeID,
			Name:            b.TypeName,
			Amount:          amount,
			NewRemaining:    remaining,
			Active:          remaining.IsPositive(),
		})
		total = total.Add(amount)
	}

	return installments, total
}
