package benefit

import "context"

// BenefitRepository reads benefit assignments. Which assignments count for a
// given pay period is decided by the benefit resolver, not the query.
type BenefitRepository interface {
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]Assignment, error)
}
