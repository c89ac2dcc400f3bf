package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrGenerationInProgress  = errors.New("payroll generation already running for this period")
	ErrRecordAlreadyPaid     = errors.New("payroll record already paid, cannot modify")
	ErrNoEmployeesInScope    = errors.New("no active employees in the requested scope")
)
