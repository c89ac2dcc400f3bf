package leave

import "time"

type GrantStatus string

const (
	GrantStatusPending  GrantStatus = "pending"
	GrantStatusApproved GrantStatus = "approved"
	GrantStatusRejected GrantStatus = "rejected"
)

// Grant is an approved span of leave days. Date range is inclusive on both
// ends.
type Grant struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Status     GrantStatus
	CreatedAt  time.Time
}

// TotalDays returns the inclusive day count of the grant.
func (g Grant) TotalDays() int {
	return int(g.EndDate.Sub(g.StartDate).Hours()/24) + 1
}
