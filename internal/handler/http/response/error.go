package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Period domain errors
	case errors.Is(err, period.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, period.ErrPeriodOverlaps):
		Conflict(w, "Pay period overlaps an existing period")
	case errors.Is(err, period.ErrInvalidPeriod):
		BadRequest(w, "Pay period has no expected hours or an empty date range", nil)
	case errors.Is(err, period.ErrInvalidTransition):
		Conflict(w, "Invalid pay period status transition")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrGenerationInProgress):
		Conflict(w, "Payroll generation already running for this period")
	case errors.Is(err, payroll.ErrNoEmployeesInScope):
		BadRequest(w, "No active employees in the requested scope", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
