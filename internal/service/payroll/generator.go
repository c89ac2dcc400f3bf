package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

// periodLocks serializes generation per pay period. Two concurrent runs for
// the same period could each amortize the same balances; the second caller
// gets ErrGenerationInProgress instead.
type periodLocks struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{active: make(map[string]struct{})}
}

func (l *periodLocks) acquire(periodID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, running := l.active[periodID]; running {
		return false
	}
	l.active[periodID] = struct{}{}
	return true
}

func (l *periodLocks) release(periodID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.active, periodID)
}

// PayrollServiceImpl runs batch generation and serves the generated output.
type PayrollServiceImpl struct {
	tx           database.TxRunner
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	periodRepo   period.PayPeriodRepository
	calculator   *EmployeeCalculator
	logger       *slog.Logger
	concurrency  int
	locks        *periodLocks
}

func NewPayrollService(
	tx database.TxRunner,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	periodRepo period.PayPeriodRepository,
	calculator *EmployeeCalculator,
	logger *slog.Logger,
	concurrency int,
) payroll.PayrollService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		periodRepo:   periodRepo,
		calculator:   calculator,
		logger:       logger,
		concurrency:  concurrency,
		locks:        newPeriodLocks(),
	}
}

// Generate regenerates the period's records from scratch. Existing records
// and deduction lines in scope are deleted first, and the period drops back
// to draft: any prior approval is invalidated by reprocessing. Employees are
// settled independently, each inside its own transaction, so one failure
// never corrupts or aborts the others.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.BatchReport, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchReport{}, err
	}

	if !s.locks.acquire(req.PayPeriodID) {
		return payroll.BatchReport{}, payroll.ErrGenerationInProgress
	}
	defer s.locks.release(req.PayPeriodID)

	p, err := s.periodRepo.GetByID(ctx, req.PayPeriodID)
	if err != nil {
		return payroll.BatchReport{}, err
	}
	if p.ExpectedHours <= 0 || !p.StartDate.Before(p.EndDate) {
		return payroll.BatchReport{}, fmt.Errorf("period %s: %w", p.ID, period.ErrInvalidPeriod)
	}

	// Reprocessing contract: wipe the scope and reset approval state before
	// regenerating.
	if err := s.payrollRepo.DeleteByPeriod(ctx, p.ID, req.DepartmentID); err != nil {
		return payroll.BatchReport{}, fmt.Errorf("failed to clear existing records: %w", err)
	}
	if p.Status != period.PeriodStatusDraft {
		if err := s.periodRepo.UpdateStatus(ctx, p.ID, period.PeriodStatusDraft); err != nil {
			return payroll.BatchReport{}, fmt.Errorf("failed to reset period status: %w", err)
		}
		p.Status = period.PeriodStatusDraft
	}

	employees, err := s.employeeRepo.ListActive(ctx, req.DepartmentID)
	if err != nil {
		return payroll.BatchReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.BatchReport{}, payroll.ErrNoEmployeesInScope
	}

	s.logger.Info("payroll generation started",
		slog.String("pay_period_id", p.ID),
		slog.Int("employees", len(employees)),
	)

	// Per-employee settlements are independent; balances belong to a single
	// employee, so only intra-employee ordering matters.
	var (
		resultMu  sync.Mutex
		processed int
		failures  []payroll.EmployeeFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, emp := range employees {
		emp := emp
		g.Go(func() error {
			if err := s.generateForEmployee(gctx, emp.ID, p); err != nil {
				s.logger.Warn("employee settlement failed",
					slog.String("pay_period_id", p.ID),
					slog.String("employee_id", emp.ID),
					slog.String("error", err.Error()),
				)
				resultMu.Lock()
				failures = append(failures, payroll.EmployeeFailure{EmployeeID: emp.ID, Reason: err.Error()})
				resultMu.Unlock()
				return nil
			}
			resultMu.Lock()
			processed++
			resultMu.Unlock()
			return nil
		})
	}

	// Workers report failures instead of returning them; Wait only surfaces
	// context cancellation.
	if err := g.Wait(); err != nil {
		return payroll.BatchReport{}, err
	}
	if err := gctx.Err(); err != nil {
		return payroll.BatchReport{}, err
	}

	summary, err := s.payrollRepo.GetSummary(ctx, p.ID)
	if err != nil {
		return payroll.BatchReport{}, fmt.Errorf("failed to summarize period: %w", err)
	}

	s.logger.Info("payroll generation finished",
		slog.String("pay_period_id", p.ID),
		slog.Int("processed", processed),
		slog.Int("failed", len(failures)),
	)

	return payroll.BatchReport{
		PayPeriodID:    p.ID,
		TotalEmployees: len(employees),
		ProcessedCount: processed,
		Failures:       failures,
		Summary:        mapToSummaryResponse(summary),
	}, nil
}

// generateForEmployee settles one employee inside a single transaction:
// calculate, upsert the record, replace its deduction lines, write back the
// amortized balances. A crash between steps rolls all of them back, so a
// balance can never be decremented without its persisted deduction line.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, employeeID string, p period.PayPeriod) error {
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		data, err := s.calculator.CalculateForPeriod(txCtx, employeeID, p)
		if err != nil {
			return err
		}

		record, err := s.payrollRepo.UpsertRecord(txCtx, payroll.Record{
			PayPeriodID:        data.PayPeriodID,
			EmployeeID:         data.EmployeeID,
			BaseSalary:         data.BaseSalary,
			TotalWorkedHours:   data.TotalWorkedHours,
			TotalRegularHours:  data.TotalRegularHours,
			TotalOvertimeHours: data.TotalOvertimeHours,
			TotalLateHours:     data.TotalLateHours,
			LateDeductions:     data.LateDeductions,
			PaidLeaveHours:     data.PaidLeaveHours,
			HourlyRate:         data.HourlyRate,
			GrossPay:           data.GrossPay,
			TotalDeductions:    data.TotalDeductions,
			TotalBenefits:      data.TotalBenefits,
			NetPay:             data.NetPay,
			Status:             payroll.RecordStatusDraft,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert payroll record: %w", err)
		}

		lines := make([]payroll.DeductionLine, 0, len(data.DeductionLines))
		for _, line := range data.DeductionLines {
			line.PayrollRecordID = record.ID
			lines = append(lines, line)
		}
		if err := s.payrollRepo.ReplaceDeductionLines(txCtx, record.ID, lines); err != nil {
			return fmt.Errorf("failed to replace deduction lines: %w", err)
		}

		for _, update := range data.BalanceUpdates {
			if err := s.calculator.deductionRepo.UpdateBalance(txCtx, update.BalanceID, update.NewRemaining, update.IsActive); err != nil {
				return fmt.Errorf("failed to write back balance %s: %w", update.BalanceID, err)
			}
		}

		return nil
	})
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, payPeriodID string, filter payroll.RecordFilter) (payroll.ListRecordsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.payrollRepo.ListRecordsByPeriod(ctx, payPeriodID, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	return payroll.ListRecordsResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, payPeriodID string) (payroll.SummaryResponse, error) {
	if _, err := s.periodRepo.GetByID(ctx, payPeriodID); err != nil {
		return payroll.SummaryResponse{}, err
	}
	summary, err := s.payrollRepo.GetSummary(ctx, payPeriodID)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}
	return mapToSummaryResponse(summary), nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return payroll.RecordResponse{
		ID:                 r.ID,
		PayPeriodID:        r.PayPeriodID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       employeeName,
		EmployeeCode:       employeeCode,
		BaseSalary:         r.BaseSalary,
		TotalWorkedHours:   r.TotalWorkedHours,
		TotalRegularHours:  r.TotalRegularHours,
		TotalOvertimeHours: r.TotalOvertimeHours,
		TotalLateHours:     r.TotalLateHours,
		LateDeductions:     r.LateDeductions,
		PaidLeaveHours:     r.PaidLeaveHours,
		HourlyRate:         r.HourlyRate,
		GrossPay:           r.GrossPay,
		TotalDeductions:    r.TotalDeductions,
		TotalBenefits:      r.TotalBenefits,
		NetPay:             r.NetPay,
		Status:             string(r.Status),
	}
}

func mapToRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	result := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}

func mapToSummaryResponse(s payroll.Summary) payroll.SummaryResponse {
	return payroll.SummaryResponse{
		PayPeriodID:     s.PayPeriodID,
		TotalEmployees:  s.TotalEmployees,
		TotalGrossPay:   s.TotalGrossPay,
		TotalDeductions: s.TotalDeductions,
		TotalNetPay:     s.TotalNetPay,
		ProcessedCount:  s.ProcessedCount,
		PendingCount:    s.PendingCount,
	}
}
