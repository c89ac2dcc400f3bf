package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFixture struct {
	service     payroll.PayrollService
	tx          *memTxRunner
	payrollRepo *memPayrollRepo
	employees   *memEmployeeRepo
	periods     *memPeriodRepo
	attendance  *memAttendanceRepo
	deductions  *memDeductionRepo
}

func newGeneratorFixture(p period.PayPeriod, emps ...employee.Employee) *generatorFixture {
	f := &generatorFixture{
		tx:          &memTxRunner{},
		payrollRepo: newMemPayrollRepo(),
		employees:   newMemEmployeeRepo(emps...),
		periods:     newMemPeriodRepo(p),
		attendance:  &memAttendanceRepo{days: make(map[string][]attendance.Day)},
		deductions:  newMemDeductionRepo(),
	}
	aggregator := NewAttendanceAggregator(f.attendance, NewHoursCalculator(DefaultHoursConfig()), 8)
	calculator := NewEmployeeCalculator(
		f.employees, f.periods, &memLeaveRepo{}, f.deductions, &memBenefitRepo{},
		aggregator, NewLeavePaymentPolicy(), 8,
	)
	f.service = NewPayrollService(
		f.tx, f.payrollRepo, f.employees, f.periods, calculator,
		slog.New(slog.NewTextHandler(io.Discard, nil)), 2,
	)
	return f
}

func (f *generatorFixture) recordFullDays(employeeID string, n int) {
	for i := 0; i < n; i++ {
		d := fullDay(date(2025, 6, 2).AddDate(0, 0, i))
		d.EmployeeID = employeeID
		f.attendance.days[employeeID] = append(f.attendance.days[employeeID], d)
	}
}

func secondEmployee(salary string) employee.Employee {
	return employee.Employee{
		ID:           "emp-2",
		DepartmentID: "dept-2",
		EmployeeCode: "E002",
		FullName:     "Jose Rivera",
		BaseSalary:   money(salary),
		Status:       employee.EmploymentStatusActive,
		HireDate:     date(2024, 3, 4),
	}
}

func TestPayrollService_Generate(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"), secondEmployee("17600"))
	f.recordFullDays("emp-1", 11)
	f.recordFullDays("emp-2", 22)

	report, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)

	assert.Equal(t, "per-2025-06", report.PayPeriodID)
	assert.Equal(t, 2, report.TotalEmployees)
	assert.Equal(t, 2, report.ProcessedCount)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 2, report.Summary.TotalEmployees)
	assert.True(t, report.Summary.TotalGrossPay.Equal(money("27600")))

	rec, err := f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordStatusDraft, rec.Status)
	assert.True(t, rec.GrossPay.Equal(money("10000")))

	// One transaction per employee.
	assert.Equal(t, 2, f.tx.calls)
}

func TestPayrollService_GenerateWritesBackBalances(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))
	f.recordFullDays("emp-1", 11)
	f.deductions.balances["bal-1"] = deduction.Balance{
		ID:                 "bal-1",
		EmployeeID:         "emp-1",
		DeductionTypeID:    "type-loan",
		TypeName:           "Salary Loan",
		OriginalAmount:     money("5000"),
		RemainingBalance:   money("800"),
		MonthlyInstallment: money("500"),
		IsActive:           true,
	}
	f.deductions.order = append(f.deductions.order, "bal-1")

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)

	bal := f.deductions.balance("bal-1")
	assert.True(t, bal.RemainingBalance.Equal(money("300")), "remaining = %s", bal.RemainingBalance)
	assert.True(t, bal.IsActive)

	rec, err := f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-1")
	require.NoError(t, err)
	lines, err := f.payrollRepo.ListDeductionLines(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, rec.ID, lines[0].PayrollRecordID)
	assert.True(t, lines[0].Amount.Equal(money("500")))
}

func TestPayrollService_RegenerateResetsApprovalAndWipesScope(t *testing.T) {
	p := junePeriod()
	f := newGeneratorFixture(p, testEmployee("20000"))
	f.recordFullDays("emp-1", 11)

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: p.ID})
	require.NoError(t, err)

	// Period advances through review, then someone regenerates.
	require.NoError(t, f.periods.UpdateStatus(context.Background(), p.ID, period.PeriodStatusSentForReview))
	f.periods.statusUpdates = nil

	report, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, report.ProcessedCount)

	got, err := f.periods.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, period.PeriodStatusDraft, got.Status, "reprocessing invalidates prior approval")
	assert.Contains(t, f.periods.statusUpdates, period.PeriodStatusDraft)

	// Old scope wiped before regenerating, and still exactly one record.
	assert.Equal(t, 2, f.payrollRepo.deleteCalls)
	records, count, err := f.payrollRepo.ListRecordsByPeriod(context.Background(), p.ID, payroll.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, records, 1)
	assert.Equal(t, payroll.RecordStatusDraft, records[0].Status)
}

func TestPayrollService_RegenerateIsIdempotent(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))
	f.recordFullDays("emp-1", 11)

	first, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)
	second, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)

	assert.True(t, first.Summary.TotalGrossPay.Equal(second.Summary.TotalGrossPay))
	assert.True(t, first.Summary.TotalNetPay.Equal(second.Summary.TotalNetPay))
	assert.Equal(t, first.Summary.TotalEmployees, second.Summary.TotalEmployees)
}

func TestPayrollService_SkipsAndReportsFailedEmployees(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"), secondEmployee("17600"))
	f.recordFullDays("emp-1", 11)
	f.recordFullDays("emp-2", 11)
	f.employees.failGet["emp-2"] = employee.ErrEmployeeNotFound

	report, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err, "one bad employee must not abort the batch")

	assert.Equal(t, 2, report.TotalEmployees)
	assert.Equal(t, 1, report.ProcessedCount)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "emp-2", report.Failures[0].EmployeeID)
	assert.NotEmpty(t, report.Failures[0].Reason)

	_, err = f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-1")
	assert.NoError(t, err)
	_, err = f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-2")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_RejectsConcurrentGeneration(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))
	f.recordFullDays("emp-1", 11)

	gate := make(chan struct{})
	entered := make(chan struct{}, 1)
	f.periods.getGate = gate
	f.periods.gateEntered = entered

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
		firstDone <- err
	}()

	// Wait until the first run holds the period lock, blocked on the gate;
	// a second run for the same period must bounce immediately.
	<-entered
	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	assert.ErrorIs(t, err, payroll.ErrGenerationInProgress)

	f.periods.mu.Lock()
	f.periods.getGate = nil
	f.periods.gateEntered = nil
	f.periods.mu.Unlock()
	close(gate)
	require.NoError(t, <-firstDone)

	// Lock released: a fresh run succeeds.
	_, err = f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	assert.NoError(t, err)
}

func TestPayrollService_GenerateValidation(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_GenerateUnknownPeriod(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-missing"})
	assert.ErrorIs(t, err, period.ErrPayPeriodNotFound)
}

func TestPayrollService_GenerateNoEmployeesInScope(t *testing.T) {
	f := newGeneratorFixture(junePeriod())

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	assert.ErrorIs(t, err, payroll.ErrNoEmployeesInScope)
}

func TestPayrollService_GenerateScopedToDepartment(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"), secondEmployee("17600"))
	f.recordFullDays("emp-1", 11)
	f.recordFullDays("emp-2", 11)

	dept := "dept-1"
	report, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06", DepartmentID: &dept})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalEmployees)
	assert.Equal(t, 1, report.ProcessedCount)
	_, err = f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-2")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_ListRecordsClampsPaging(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))
	f.recordFullDays("emp-1", 11)

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)

	resp, err := f.service.ListRecords(context.Background(), "per-2025-06", payroll.RecordFilter{Page: -3, Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "emp-1", resp.Data[0].EmployeeID)
}

func TestPayrollService_GetSummaryRequiresPeriod(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))

	_, err := f.service.GetSummary(context.Background(), "per-missing")
	assert.ErrorIs(t, err, period.ErrPayPeriodNotFound)
}

func TestPayrollService_GetRecord(t *testing.T) {
	f := newGeneratorFixture(junePeriod(), testEmployee("20000"))
	f.recordFullDays("emp-1", 11)

	_, err := f.service.Generate(context.Background(), payroll.GeneratePayrollRequest{PayPeriodID: "per-2025-06"})
	require.NoError(t, err)

	rec, err := f.payrollRepo.GetRecordByPeriodEmployee(context.Background(), "per-2025-06", "emp-1")
	require.NoError(t, err)

	resp, err := f.service.GetRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, resp.ID)
	assert.True(t, resp.GrossPay.Equal(money("10000")))

	_, err = f.service.GetRecord(context.Background(), "rec-missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}
