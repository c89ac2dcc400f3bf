package payroll

import "context"

// PayrollRepository defines data access for generated payroll output.
// UpsertRecord and ReplaceDeductionLines are always called inside the
// per-employee generation transaction.
type PayrollRepository interface {
	// UpsertRecord inserts the record or, when one already exists for the
	// (pay period, employee) pair, overwrites it in place.
	UpsertRecord(ctx context.Context, record Record) (Record, error)

	// ReplaceDeductionLines deletes every line of the record and inserts the
	// given ones. Never merges.
	ReplaceDeductionLines(ctx context.Context, recordID string, lines []DeductionLine) error

	// DeleteByPeriod removes records (and their lines) for the period,
	// optionally restricted to one department's employees.
	DeleteByPeriod(ctx context.Context, payPeriodID string, departmentID *string) error

	GetRecordByID(ctx context.Context, id string) (Record, error)
	GetRecordByPeriodEmployee(ctx context.Context, payPeriodID, employeeID string) (Record, error)
	ListRecordsByPeriod(ctx context.Context, payPeriodID string, filter RecordFilter) ([]Record, int64, error)
	ListDeductionLines(ctx context.Context, recordID string) ([]DeductionLine, error)

	// GetSummary aggregates the period's records by summation.
	GetSummary(ctx context.Context, payPeriodID string) (Summary, error)
}
