package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, department_id, employee_code, full_name, base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.DepartmentID, &e.EmployeeCode, &e.FullName, &e.BaseSalary, &e.Status, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, department_id, employee_code, full_name, base_salary, status, hire_date, created_at, updated_at
		FROM employees
		WHERE status = $1
	`
	args := []interface{}{employee.EmploymentStatusActive}
	if departmentID != nil {
		query += " AND department_id = $2"
		args = append(args, *departmentID)
	}
	query += " ORDER BY employee_code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.DepartmentID, &e.EmployeeCode, &e.FullName, &e.BaseSalary, &e.Status, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
