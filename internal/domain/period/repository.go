package period

import "context"

// PayPeriodRepository defines data access for pay periods. The calculation
// engine reads periods and resets their status on regeneration; the approval
// workflow advances the status through UpdateStatus.
type PayPeriodRepository interface {
	// Create persists a new period. Implementations must reject a period
	// whose date range overlaps an existing one with ErrPeriodOverlaps.
	Create(ctx context.Context, p PayPeriod) (PayPeriod, error)
	GetByID(ctx context.Context, id string) (PayPeriod, error)
	List(ctx context.Context) ([]PayPeriod, error)
	UpdateStatus(ctx context.Context, id string, status PeriodStatus) error
}
