package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/benefit"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type benefitRepository struct {
	db *database.DB
}

func NewBenefitRepository(db *database.DB) benefit.BenefitRepository {
	return &benefitRepository{db: db}
}

func (r *benefitRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]benefit.Assignment, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.benefit_type_id, a.amount, a.start_date, a.end_date,
			   a.is_active, a.created_at, t.name
		FROM benefit_assignments a
		JOIN benefit_types t ON t.id = a.benefit_type_id
		WHERE a.employee_id = $1 AND a.is_active = true
		ORDER BY a.start_date, a.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit assignments: %w", err)
	}
	defer rows.Close()

	var assignments []benefit.Assignment
	for rows.Next() {
		var a benefit.Assignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.BenefitTypeID, &a.Amount, &a.StartDate, &a.EndDate,
			&a.IsActive, &a.CreatedAt, &a.TypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan benefit assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
