package payroll

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	PayPeriodID  string  `json:"pay_period_id"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayPeriodID) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_id", Message: "is required"})
	}
	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "must not be blank when present"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeFailure reports one employee the batch could not settle. The rest
// of the batch is unaffected.
type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchReport is the result of one generation run.
type BatchReport struct {
	PayPeriodID    string            `json:"pay_period_id"`
	TotalEmployees int               `json:"total_employees"`
	ProcessedCount int               `json:"processed_count"`
	Failures       []EmployeeFailure `json:"failures,omitempty"`
	Summary        SummaryResponse   `json:"summary"`
}

// ========== RECORD DTOs ==========

// RecordFilter narrows record listings. Every field maps to one
// parameterized predicate; there is no ad hoc SQL assembly from user input.
type RecordFilter struct {
	EmployeeID   *string
	DepartmentID *string
	Status       *RecordStatus
	Page         int
	Limit        int
}

type RecordResponse struct {
	ID                 string          `json:"id"`
	PayPeriodID        string          `json:"pay_period_id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name,omitempty"`
	EmployeeCode       string          `json:"employee_code,omitempty"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	TotalWorkedHours   float64         `json:"total_worked_hours"`
	TotalRegularHours  float64         `json:"total_regular_hours"`
	TotalOvertimeHours float64         `json:"total_overtime_hours"`
	TotalLateHours     float64         `json:"total_late_hours"`
	LateDeductions     decimal.Decimal `json:"late_deductions"`
	PaidLeaveHours     float64         `json:"paid_leave_hours"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	TotalBenefits      decimal.Decimal `json:"total_benefits"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
}

type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type SummaryResponse struct {
	PayPeriodID     string          `json:"pay_period_id"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	ProcessedCount  int             `json:"processed_count"`
	PendingCount    int             `json:"pending_count"`
}
