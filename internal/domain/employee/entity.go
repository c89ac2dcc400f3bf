package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	DepartmentID string
	EmployeeCode string
	FullName     string
	BaseSalary   decimal.Decimal
	Status       EmploymentStatus
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
