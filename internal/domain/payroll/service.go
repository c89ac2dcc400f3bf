package payroll

import "context"

// PayrollService is the engine's entry point for the HTTP layer and any
// other caller (exports, paystub rendering).
type PayrollService interface {
	// Generate runs batch generation for a pay period, optionally scoped to
	// one department. Re-running for the same scope regenerates from scratch
	// and invalidates any downstream approval.
	Generate(ctx context.Context, req GeneratePayrollRequest) (BatchReport, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, payPeriodID string, filter RecordFilter) (ListRecordsResponse, error)
	GetSummary(ctx context.Context, payPeriodID string) (SummaryResponse, error)
}
