package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Grant, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, status, created_at
		FROM leave_grants
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, leave.GrantStatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.Grant
	for rows.Next() {
		var g leave.Grant
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.LeaveType, &g.StartDate, &g.EndDate, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, rows.Err()
}
