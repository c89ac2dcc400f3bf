package leave

import (
	"context"
	"time"
)

// LeaveRepository reads approved leave grants. Requesting and approving
// leave happens in the leave subsystem; the engine only consumes the result.
type LeaveRepository interface {
	// ListApprovedOverlapping returns the employee's approved grants whose
	// date range intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Grant, error)
}
