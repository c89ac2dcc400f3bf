package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const recordColumns = `
	id, pay_period_id, employee_id, base_salary,
	total_worked_hours, total_regular_hours, total_overtime_hours, total_late_hours,
	late_deductions, paid_leave_hours, hourly_rate, gross_pay,
	total_deductions, total_benefits, net_pay, status, created_at, updated_at
`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.PayPeriodID, &rec.EmployeeID, &rec.BaseSalary,
		&rec.TotalWorkedHours, &rec.TotalRegularHours, &rec.TotalOvertimeHours, &rec.TotalLateHours,
		&rec.LateDeductions, &rec.PaidLeaveHours, &rec.HourlyRate, &rec.GrossPay,
		&rec.TotalDeductions, &rec.TotalBenefits, &rec.NetPay, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *payrollRepository) UpsertRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	// The id only lands on insert; on conflict the existing row keeps its id
	// and RETURNING reports that one.
	query := `
		INSERT INTO payroll_records (
			id, pay_period_id, employee_id, base_salary,
			total_worked_hours, total_regular_hours, total_overtime_hours, total_late_hours,
			late_deductions, paid_leave_hours, hourly_rate, gross_pay,
			total_deductions, total_benefits, net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (pay_period_id, employee_id) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			total_worked_hours = EXCLUDED.total_worked_hours,
			total_regular_hours = EXCLUDED.total_regular_hours,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			total_late_hours = EXCLUDED.total_late_hours,
			late_deductions = EXCLUDED.late_deductions,
			paid_leave_hours = EXCLUDED.paid_leave_hours,
			hourly_rate = EXCLUDED.hourly_rate,
			gross_pay = EXCLUDED.gross_pay,
			total_deductions = EXCLUDED.total_deductions,
			total_benefits = EXCLUDED.total_benefits,
			net_pay = EXCLUDED.net_pay,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		uuid.New().String(), record.PayPeriodID, record.EmployeeID, record.BaseSalary,
		record.TotalWorkedHours, record.TotalRegularHours, record.TotalOvertimeHours, record.TotalLateHours,
		record.LateDeductions, record.PaidLeaveHours, record.HourlyRate, record.GrossPay,
		record.TotalDeductions, record.TotalBenefits, record.NetPay, record.Status,
	))
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) ReplaceDeductionLines(ctx context.Context, recordID string, lines []payroll.DeductionLine) error {
	q := database.QuerierFrom(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_deduction_lines WHERE payroll_record_id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to delete deduction lines: %w", err)
	}

	for _, line := range lines {
		_, err := q.Exec(ctx, `
			INSERT INTO payroll_deduction_lines (id, payroll_record_id, deduction_type_id, name, amount)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), recordID, line.DeductionTypeID, line.Name, line.Amount)
		if err != nil {
			return fmt.Errorf("failed to insert deduction line: %w", err)
		}
	}

	return nil
}

func (r *payrollRepository) DeleteByPeriod(ctx context.Context, payPeriodID string, departmentID *string) error {
	q := database.QuerierFrom(ctx, r.db)

	recordFilter := `SELECT id FROM payroll_records WHERE pay_period_id = $1`
	args := []interface{}{payPeriodID}
	if departmentID != nil {
		recordFilter += ` AND employee_id IN (SELECT id FROM employees WHERE department_id = $2)`
		args = append(args, *departmentID)
	}

	if _, err := q.Exec(ctx,
		`DELETE FROM payroll_deduction_lines WHERE payroll_record_id IN (`+recordFilter+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete deduction lines for period: %w", err)
	}
	if _, err := q.Exec(ctx,
		`DELETE FROM payroll_records WHERE id IN (`+recordFilter+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete payroll records for period: %w", err)
	}

	return nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT r.id, r.pay_period_id, r.employee_id, r.base_salary,
			   r.total_worked_hours, r.total_regular_hours, r.total_overtime_hours, r.total_late_hours,
			   r.late_deductions, r.paid_leave_hours, r.hourly_rate, r.gross_pay,
			   r.total_deductions, r.total_benefits, r.net_pay, r.status, r.created_at, r.updated_at,
			   e.full_name, e.employee_code
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	var rec payroll.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.PayPeriodID, &rec.EmployeeID, &rec.BaseSalary,
		&rec.TotalWorkedHours, &rec.TotalRegularHours, &rec.TotalOvertimeHours, &rec.TotalLateHours,
		&rec.LateDeductions, &rec.PaidLeaveHours, &rec.HourlyRate, &rec.GrossPay,
		&rec.TotalDeductions, &rec.TotalBenefits, &rec.NetPay, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByPeriodEmployee(ctx context.Context, payPeriodID, employeeID string) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM payroll_records WHERE pay_period_id = $1 AND employee_id = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, payPeriodID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecordsByPeriod(ctx context.Context, payPeriodID string, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	// Typed filter fields map to parameterized predicates; nothing from the
	// caller is spliced into the SQL text.
	where := `WHERE r.pay_period_id = $1`
	args := []interface{}{payPeriodID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		where += fmt.Sprintf(" AND e.department_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_records r JOIN employees e ON e.id = r.employee_id ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := `
		SELECT r.id, r.pay_period_id, r.employee_id, r.base_salary,
			   r.total_worked_hours, r.total_regular_hours, r.total_overtime_hours, r.total_late_hours,
			   r.late_deductions, r.paid_leave_hours, r.hourly_rate, r.gross_pay,
			   r.total_deductions, r.total_benefits, r.net_pay, r.status, r.created_at, r.updated_at,
			   e.full_name, e.employee_code
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		` + where + fmt.Sprintf(" ORDER BY e.employee_code LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		if err := rows.Scan(
			&rec.ID, &rec.PayPeriodID, &rec.EmployeeID, &rec.BaseSalary,
			&rec.TotalWorkedHours, &rec.TotalRegularHours, &rec.TotalOvertimeHours, &rec.TotalLateHours,
			&rec.LateDeductions, &rec.PaidLeaveHours, &rec.HourlyRate, &rec.GrossPay,
			&rec.TotalDeductions, &rec.TotalBenefits, &rec.NetPay, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, rows.Err()
}

func (r *payrollRepository) ListDeductionLines(ctx context.Context, recordID string) ([]payroll.DeductionLine, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, payroll_record_id, deduction_type_id, name, amount
		FROM payroll_deduction_lines
		WHERE payroll_record_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.DeductionLine
	for rows.Next() {
		var line payroll.DeductionLine
		if err := rows.Scan(&line.ID, &line.PayrollRecordID, &line.DeductionTypeID, &line.Name, &line.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan deduction line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (r *payrollRepository) GetSummary(ctx context.Context, payPeriodID string) (payroll.Summary, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(gross_pay), 0),
			   COALESCE(SUM(total_deductions + late_deductions), 0),
			   COALESCE(SUM(net_pay), 0),
			   COUNT(*) FILTER (WHERE status IN ('processed', 'paid')),
			   COUNT(*) FILTER (WHERE status = 'draft')
		FROM payroll_records
		WHERE pay_period_id = $1
	`

	summary := payroll.Summary{PayPeriodID: payPeriodID}
	err := q.QueryRow(ctx, query, payPeriodID).Scan(
		&summary.TotalEmployees,
		&summary.TotalGrossPay,
		&summary.TotalDeductions,
		&summary.TotalNetPay,
		&summary.ProcessedCount,
		&summary.PendingCount,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
