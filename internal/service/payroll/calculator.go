package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// EmployeeCalculator produces one employee's settlement for one pay period.
// Given unchanged inputs it always returns an identical settlement; every
// repository it depends on is read-only here, so calling it never mutates
// anything. Write-back happens later, in the batch generator's transaction.
type EmployeeCalculator struct {
	employeeRepo  employee.EmployeeRepository
	periodRepo    period.PayPeriodRepository
	leaveRepo     leave.LeaveRepository
	deductionRepo deduction.DeductionRepository
	benefitRepo   benefit.BenefitRepository
	aggregator    *AttendanceAggregator
	policy        *LeavePaymentPolicy
	amortizer     DeductionAmortizer
	benefits      BenefitResolver
	standardDay   float64
}

func NewEmployeeCalculator(
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PayPeriodRepository,
	leaveRepo leave.LeaveRepository,
	deductionRepo deduction.DeductionRepository,
	benefitRepo benefit.BenefitRepository,
	aggregator *AttendanceAggregator,
	policy *LeavePaymentPolicy,
	standardDay float64,
) *EmployeeCalculator {
	return &EmployeeCalculator{
		employeeRepo:  employeeRepo,
		periodRepo:    periodRepo,
		leaveRepo:     leaveRepo,
		deductionRepo: deductionRepo,
		benefitRepo:   benefitRepo,
		aggregator:    aggregator,
		policy:        policy,
		standardDay:   standardDay,
	}
}

// Calculate resolves the pay period and settles the employee against it.
func (c *EmployeeCalculator) Calculate(ctx context.Context, employeeID, payPeriodID string) (payroll.EmployeePayrollData, error) {
	p, err := c.periodRepo.GetByID(ctx, payPeriodID)
	if err != nil {
		return payroll.EmployeePayrollData{}, err
	}
	return c.CalculateForPeriod(ctx, employeeID, p)
}

// CalculateForPeriod settles the employee against an already-loaded period.
// The batch generator uses this form so the period is read once per batch.
func (c *EmployeeCalculator) CalculateForPeriod(ctx context.Context, employeeID string, p period.PayPeriod) (payroll.EmployeePayrollData, error) {
	emp, err := c.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.EmployeePayrollData{}, err
	}

	// The hourly rate divides by expected hours; a zero-hour period cannot
	// be settled.
	if p.ExpectedHours <= 0 || !p.StartDate.Before(p.EndDate) {
		return payroll.EmployeePayrollData{}, fmt.Errorf("period %s: %w", p.ID, period.ErrInvalidPeriod)
	}
	expectedHours := decimal.NewFromFloat(p.ExpectedHours)
	hourlyRate := emp.BaseSalary.Div(expectedHours).Round(2)

	totals, err := c.aggregator.Aggregate(ctx, employeeID, p.StartDate, p.EndDate)
	if err != nil {
		return payroll.EmployeePayrollData{}, err
	}

	lateDeductions := decimal.NewFromFloat(totals.TotalLateHours).Mul(hourlyRate).Round(2)

	grants, err := c.leaveRepo.ListApprovedOverlapping(ctx, employeeID, p.StartDate, p.EndDate)
	if err != nil {
		return payroll.EmployeePayrollData{}, fmt.Errorf("failed to load leave grants: %w", err)
	}
	paidLeaveHours := c.policy.PaidLeaveHours(grants, p.StartDate, p.EndDate, c.standardDay)

	balances, err := c.deductionRepo.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.EmployeePayrollData{}, fmt.Errorf("failed to load deduction balances: %w", err)
	}
	installments, totalDeductions := c.amortizer.Amortize(balances)

	assignments, err := c.benefitRepo.ListActiveByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.EmployeePayrollData{}, fmt.Errorf("failed to load benefit assignments: %w", err)
	}
	benefitLines, totalBenefits := c.benefits.Resolve(assignments, p.StartDate, p.EndDate)

	// "No work, no pay" proration: the paid fraction of expected hours earns
	// the same fraction of the monthly salary.
	totalPaidHours := decimal.NewFromFloat(totals.TotalWorkedHours + paidLeaveHours)
	grossPay := emp.BaseSalary.Mul(totalPaidHours).Div(expectedHours).Round(2)
	netPay := grossPay.Add(totalBenefits).Sub(totalDeductions).Sub(lateDeductions).Round(2)

	data := payroll.EmployeePayrollData{
		EmployeeID:         employeeID,
		PayPeriodID:        p.ID,
		BaseSalary:         emp.BaseSalary,
		HourlyRate:         hourlyRate,
		TotalWorkedHours:   totals.TotalWorkedHours,
		TotalRegularHours:  totals.TotalRegularHours,
		TotalOvertimeHours: totals.TotalOvertimeHours,
		TotalLateHours:     totals.TotalLateHours,
		LateDeductions:     lateDeductions,
		PaidLeaveHours:     paidLeaveHours,
		TotalDeductions:    totalDeductions,
		BenefitLines:       benefitLines,
		TotalBenefits:      totalBenefits,
		GrossPay:           grossPay,
		NetPay:             netPay,
	}

	for _, inst := range installments {
		data.DeductionLines = append(data.DeductionLines, payroll.DeductionLine{
			DeductionTypeID: inst.DeductionTypeID,
			Name:            inst.Name,
			Amount:          inst.Amount,
		})
		data.BalanceUpdates = append(data.BalanceUpdates, payroll.BalanceUpdate{
			BalanceID:    inst.BalanceID,
			NewRemaining: inst.NewRemaining,
			IsActive:     inst.Active,
		})
	}

	return data, nil
}
