package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]deduction.Balance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT b.id, b.employee_id, b.deduction_type_id, b.original_amount, b.remaining_balance,
			   b.monthly_installment, b.start_date, b.end_date, b.is_active,
			   b.created_at, b.updated_at, t.name
		FROM deduction_balances b
		JOIN deduction_types t ON t.id = b.deduction_type_id
		WHERE b.employee_id = $1 AND b.is_active = true AND b.remaining_balance > 0
		ORDER BY b.start_date, b.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction balances: %w", err)
	}
	defer rows.Close()

	var balances []deduction.Balance
	for rows.Next() {
		var b deduction.Balance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.DeductionTypeID, &b.OriginalAmount, &b.RemainingBalance,
			&b.MonthlyInstallment, &b.StartDate, &b.EndDate, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt, &b.TypeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deduction balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

func (r *deductionRepository) UpdateBalance(ctx context.Context, id string, remaining decimal.Decimal, isActive bool) error {
	q := database.QuerierFrom(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE deduction_balances
		SET remaining_balance = $2, is_active = $3, updated_at = NOW()
		WHERE id = $1
	`, id, remaining, isActive)
	if err != nil {
		return fmt.Errorf("failed to update deduction balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return deduction.ErrBalanceNotFound
	}

	return nil
}
