package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepository struct {
	db *database.DB
}

func NewPayPeriodRepository(db *database.DB) period.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}

func (r *payPeriodRepository) Create(ctx context.Context, p period.PayPeriod) (period.PayPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	// Overlap check and insert in one statement; daterange keeps the check
	// inclusive on both ends.
	query := `
		INSERT INTO pay_periods (id, name, start_date, end_date, working_days, expected_hours, status)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM pay_periods
			WHERE daterange(start_date, end_date, '[]') && daterange($3::date, $4::date, '[]')
		)
		RETURNING id, name, start_date, end_date, working_days, expected_hours, status, created_at, updated_at
	`

	var created period.PayPeriod
	err := q.QueryRow(ctx, query,
		uuid.New().String(), p.Name, p.StartDate, p.EndDate, p.WorkingDays, p.ExpectedHours, p.Status,
	).Scan(
		&created.ID, &created.Name, &created.StartDate, &created.EndDate,
		&created.WorkingDays, &created.ExpectedHours, &created.Status,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return period.PayPeriod{}, period.ErrPeriodOverlaps
		}
		return period.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return created, nil
}

func (r *payPeriodRepository) GetByID(ctx context.Context, id string) (period.PayPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, working_days, expected_hours, status, created_at, updated_at
		FROM pay_periods
		WHERE id = $1
	`

	var p period.PayPeriod
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.WorkingDays, &p.ExpectedHours, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return period.PayPeriod{}, period.ErrPayPeriodNotFound
		}
		return period.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}

	return p, nil
}

func (r *payPeriodRepository) List(ctx context.Context) ([]period.PayPeriod, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, name, start_date, end_date, working_days, expected_hours, status, created_at, updated_at
		FROM pay_periods
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []period.PayPeriod
	for rows.Next() {
		var p period.PayPeriod
		if err := rows.Scan(
			&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.WorkingDays, &p.ExpectedHours, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

func (r *payPeriodRepository) UpdateStatus(ctx context.Context, id string, status period.PeriodStatus) error {
	q := database.QuerierFrom(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_periods SET status = $2, updated_at = NOW() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update pay period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return period.ErrPayPeriodNotFound
	}

	return nil
}
