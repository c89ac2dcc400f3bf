package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads recorded attendance. The engine never writes
// attendance; clock-in/out belongs to the attendance subsystem.
type AttendanceRepository interface {
	// ListDays returns the employee's recorded days inside [from, to],
	// inclusive, ordered by date.
	ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]Day, error)
}
