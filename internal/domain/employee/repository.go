package employee

import "context"

// EmployeeRepository defines read access to the employee master records.
// The engine never mutates employees; master-data CRUD lives elsewhere.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active employees, optionally scoped to one department.
	ListActive(ctx context.Context, departmentID *string) ([]Employee, error)
}
