package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. They hold plain slices and maps behind a
// mutex so the batch generator can hit them from its worker goroutines.

type memTxRunner struct {
	mu    sync.Mutex
	calls int
}

func (f *memTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(ctx)
}

type memEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	order     []string
	failGet   map[string]error
}

func newMemEmployeeRepo(emps ...employee.Employee) *memEmployeeRepo {
	r := &memEmployeeRepo{
		employees: make(map[string]employee.Employee),
		failGet:   make(map[string]error),
	}
	for _, e := range emps {
		r.employees[e.ID] = e
		r.order = append(r.order, e.ID)
	}
	return r
}

func (r *memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failGet[id]; ok {
		return employee.Employee{}, err
	}
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memEmployeeRepo) ListActive(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []employee.Employee
	for _, id := range r.order {
		e := r.employees[id]
		if e.Status != employee.EmploymentStatusActive {
			continue
		}
		if departmentID != nil && e.DepartmentID != *departmentID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

type memPeriodRepo struct {
	mu            sync.Mutex
	periods       map[string]period.PayPeriod
	statusUpdates []period.PeriodStatus

	// getGate, when set, blocks GetByID until closed, signalling gateEntered
	// first. Lets a test hold one generation run mid-flight while a second
	// one is attempted.
	getGate     chan struct{}
	gateEntered chan struct{}
}

func newMemPeriodRepo(periods ...period.PayPeriod) *memPeriodRepo {
	r := &memPeriodRepo{periods: make(map[string]period.PayPeriod)}
	for _, p := range periods {
		r.periods[p.ID] = p
	}
	return r
}

func (r *memPeriodRepo) Create(ctx context.Context, p period.PayPeriod) (period.PayPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods[p.ID] = p
	return p, nil
}

func (r *memPeriodRepo) GetByID(ctx context.Context, id string) (period.PayPeriod, error) {
	r.mu.Lock()
	gate := r.getGate
	entered := r.gateEntered
	p, ok := r.periods[id]
	r.mu.Unlock()
	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-gate
	}
	if !ok {
		return period.PayPeriod{}, period.ErrPayPeriodNotFound
	}
	return p, nil
}

func (r *memPeriodRepo) List(ctx context.Context) ([]period.PayPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []period.PayPeriod
	for _, p := range r.periods {
		result = append(result, p)
	}
	return result, nil
}

func (r *memPeriodRepo) UpdateStatus(ctx context.Context, id string, status period.PeriodStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok {
		return period.ErrPayPeriodNotFound
	}
	p.Status = status
	r.periods[id] = p
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

type memAttendanceRepo struct {
	days map[string][]attendance.Day
	err  error
}

func (r *memAttendanceRepo) ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Day, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []attendance.Day
	for _, d := range r.days[employeeID] {
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

type memLeaveRepo struct {
	grants []leave.Grant
}

func (r *memLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Grant, error) {
	var result []leave.Grant
	for _, g := range r.grants {
		if g.EmployeeID != employeeID || g.Status != leave.GrantStatusApproved {
			continue
		}
		if g.EndDate.Before(from) || g.StartDate.After(to) {
			continue
		}
		result = append(result, g)
	}
	return result, nil
}

type memDeductionRepo struct {
	mu       sync.Mutex
	balances map[string]deduction.Balance
	order    []string
}

func newMemDeductionRepo(balances ...deduction.Balance) *memDeductionRepo {
	r := &memDeductionRepo{balances: make(map[string]deduction.Balance)}
	for _, b := range balances {
		r.balances[b.ID] = b
		r.order = append(r.order, b.ID)
	}
	return r
}

func (r *memDeductionRepo) ListActiveByEmployee(ctx context.Context, employeeID string) ([]deduction.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []deduction.Balance
	for _, id := range r.order {
		b := r.balances[id]
		if b.EmployeeID != employeeID || !b.IsActive || !b.RemainingBalance.IsPositive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *memDeductionRepo) UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[id]
	if !ok {
		return deduction.ErrBalanceNotFound
	}
	b.RemainingBalance = remaining
	b.IsActive = isActive
	r.balances[id] = b
	return nil
}

func (r *memDeductionRepo) balance(id string) deduction.Balance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[id]
}

type memBenefitRepo struct {
	assignments []benefit.Assignment
}

func (r *memBenefitRepo) ListActiveByEmployee(ctx context.Context, employeeID string) ([]benefit.Assignment, error) {
	var result []benefit.Assignment
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID && a.IsActive {
			result = append(result, a)
		}
	}
	return result, nil
}

type memPayrollRepo struct {
	mu          sync.Mutex
	records     map[string]payroll.Record // keyed by period|employee
	lines       map[string][]payroll.DeductionLine
	nextID      int
	deleteCalls int
}

func newMemPayrollRepo() *memPayrollRepo {
	return &memPayrollRepo{
		records: make(map[string]payroll.Record),
		lines:   make(map[string][]payroll.DeductionLine),
	}
}

func recordKey(payPeriodID, employeeID string) string {
	return payPeriodID + "|" + employeeID
}

func (r *memPayrollRepo) UpsertRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := recordKey(record.PayPeriodID, record.EmployeeID)
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
	} else {
		r.nextID++
		record.ID = fmt.Sprintf("rec-%d", r.nextID)
	}
	r.records[key] = record
	return record, nil
}

func (r *memPayrollRepo) ReplaceDeductionLines(ctx context.Context, recordID string, lines []payroll.DeductionLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[recordID] = lines
	return nil
}

func (r *memPayrollRepo) DeleteByPeriod(ctx context.Context, payPeriodID string, departmentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	for key, rec := range r.records {
		if rec.PayPeriodID == payPeriodID {
			delete(r.lines, rec.ID)
			delete(r.records, key)
		}
	}
	return nil
}

func (r *memPayrollRepo) GetRecordByID(ctx context.Context, id string) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return payroll.Record{}, payroll.ErrPayrollRecordNotFound
}

func (r *memPayrollRepo) GetRecordByPeriodEmployee(ctx context.Context, payPeriodID, employeeID string) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[recordKey(payPeriodID, employeeID)]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *memPayrollRepo) ListRecordsByPeriod(ctx context.Context, payPeriodID string, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []payroll.Record
	for _, rec := range r.records {
		if rec.PayPeriodID != payPeriodID {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		result = append(result, rec)
	}
	return result, int64(len(result)), nil
}

func (r *memPayrollRepo) ListDeductionLines(ctx context.Context, recordID string) ([]payroll.DeductionLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[recordID], nil
}

func (r *memPayrollRepo) GetSummary(ctx context.Context, payPeriodID string) (payroll.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary := payroll.Summary{
		PayPeriodID:     payPeriodID,
		TotalGrossPay:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetPay:     decimal.Zero,
	}
	for _, rec := range r.records {
		if rec.PayPeriodID != payPeriodID {
			continue
		}
		summary.TotalEmployees++
		summary.TotalGrossPay = summary.TotalGrossPay.Add(rec.GrossPay)
		summary.TotalDeductions = summary.TotalDeductions.Add(rec.TotalDeductions)
		summary.TotalNetPay = summary.TotalNetPay.Add(rec.NetPay)
		switch rec.Status {
		case payroll.RecordStatusProcessed, payroll.RecordStatusPaid:
			summary.ProcessedCount++
		default:
			summary.PendingCount++
		}
	}
	return summary, nil
}
