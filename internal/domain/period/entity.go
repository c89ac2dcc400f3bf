package period

import "time"

// PayPeriod is the fixed date range payroll is computed for, typically one
// month. ExpectedHours is derived from WorkingDays at creation time and is
// the denominator of the proration rule.
type PayPeriod struct {
	ID            string
	Name          string
	StartDate     time.Time
	EndDate       time.Time
	WorkingDays   int
	ExpectedHours float64
	Status        PeriodStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PeriodStatus string

const (
	PeriodStatusDraft         PeriodStatus = "draft"
	PeriodStatusProcessing    PeriodStatus = "processing"
	PeriodStatusSentForReview PeriodStatus = "sent_for_review"
	PeriodStatusCompleted     PeriodStatus = "completed"
)

// Contains reports whether date falls inside the period, inclusive on both
// ends.
func (p PayPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
