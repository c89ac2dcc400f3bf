package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusDraft     RecordStatus = "draft"
	RecordStatusProcessed RecordStatus = "processed"
	RecordStatusPaid      RecordStatus = "paid"
)

// Record is one employee's settlement for one pay period. There is exactly
// one row per (pay_period_id, employee_id); regeneration overwrites it.
type Record struct {
	ID                 string
	PayPeriodID        string
	EmployeeID         string
	BaseSalary         decimal.Decimal
	TotalWorkedHours   float64
	TotalRegularHours  float64
	TotalOvertimeHours float64
	TotalLateHours     float64
	LateDeductions     decimal.Decimal
	PaidLeaveHours     float64
	HourlyRate         decimal.Decimal
	GrossPay           decimal.Decimal
	TotalDeductions    decimal.Decimal
	TotalBenefits      decimal.Decimal
	NetPay             decimal.Decimal
	Status             RecordStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// DeductionLine is one itemized deduction on a record. Lines are replaced
// wholesale every time their record is regenerated.
type DeductionLine struct {
	ID              string
	PayrollRecordID string
	DeductionTypeID string
	Name            string
	Amount          decimal.Decimal
}

// BenefitLine is one itemized benefit on a settlement. Benefit lines are
// part of the calculation output consumed by paystub rendering; they are not
// persisted separately because assignments are read-only.
type BenefitLine struct {
	BenefitTypeID string
	Name          string
	Amount        decimal.Decimal
}

// EmployeePayrollData is the full settlement produced by the employee
// calculator, before persistence. Identical inputs always produce identical
// output; the batch generator relies on that for reprocessing.
type EmployeePayrollData struct {
	EmployeeID         string
	PayPeriodID        string
	BaseSalary         decimal.Decimal
	HourlyRate         decimal.Decimal
	TotalWorkedHours   float64
	TotalRegularHours  float64
	TotalOvertimeHours float64
	TotalLateHours     float64
	LateDeductions     decimal.Decimal
	PaidLeaveHours     float64
	DeductionLines     []DeductionLine
	TotalDeductions    decimal.Decimal
	BenefitLines       []BenefitLine
	TotalBenefits      decimal.Decimal
	GrossPay           decimal.Decimal
	NetPay             decimal.Decimal

	// BalanceUpdates carries the amortizer's write-back instructions for the
	// balances behind DeductionLines. Persisted in the same transaction as
	// the record.
	BalanceUpdates []BalanceUpdate
}

// BalanceUpdate is the new state of one deduction balance after this
// period's installment.
type BalanceUpdate struct {
	BalanceID    string
	NewRemaining decimal.Decimal
	IsActive     bool
}

// Summary aggregates a period's records for reporting and export.
type Summary struct {
	PayPeriodID     string
	TotalEmployees  int
	TotalGrossPay   decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetPay     decimal.Decimal
	ProcessedCount  int
	PendingCount    int
}
