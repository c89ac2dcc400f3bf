package attendance

import "time"

// SessionKind identifies which half of the split shift a session belongs to.
type SessionKind string

const (
	SessionMorning   SessionKind = "morning"
	SessionAfternoon SessionKind = "afternoon"
)

// Session is one recorded half-day clock pair. Either timestamp may be
// missing: employees forget to clock out, and badge readers sometimes only
// capture the exit swipe.
type Session struct {
	Kind     SessionKind
	ClockIn  *time.Time
	ClockOut *time.Time
}

// Day holds one employee's recorded sessions for a single calendar date.
// Immutable once written by the attendance subsystem.
type Day struct {
	EmployeeID string
	Date       time.Time
	Sessions   []Session
}

// Session returns the day's session of the given kind, or nil.
func (d Day) Session(kind SessionKind) *Session {
	for i := range d.Sessions {
		if d.Sessions[i].Kind == kind {
			return &d.Sessions[i]
		}
	}
	return nil
}
