package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// BenefitResolver selects the benefit assignments that count for a pay
// period and sums their fixed amounts.
type BenefitResolver struct{}

// Resolve keeps assignments that are active and whose validity range
// overlaps [periodStart, periodEnd]. An open-ended assignment overlaps every
// period from its start date on.
func (BenefitResolver) Resolve(assignments []benefit.Assignment, periodStart, periodEnd time.Time) ([]payroll.BenefitLine, decimal.Decimal) {
	var lines []payroll.BenefitLine
	total := decimal.Zero

	for _, a := range assignments {
		if !a.IsActive {
			continue
		}
		if a.StartDate.After(periodEnd) {
			continue
		}
		if a.EndDate != nil && a.EndDate.Before(periodStart) {
			continue
		}

		lines = append(lines, payroll.BenefitLine{
			BenefitTypeID: a.BenefitTypeID,
			Name:          a.TypeName,
			Amount:        a.Amount,
		})
		total = total.Add(a.Amount)
	}

	return lines, total
}
