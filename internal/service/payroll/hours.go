package payroll

import (
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
)

// HoursConfig describes the split shift the calculator credits against.
// Times are decimal hours of day (8.5 == 08:30).
type HoursConfig struct {
	MorningStart   float64
	MorningEnd     float64
	AfternoonStart float64
	AfternoonEnd   float64
	GraceMinutes   int
	SessionCap     float64
}

// DefaultHoursConfig is the standard 8-hour day: 08:00-12:00 and
// 13:00-17:00, 30 minutes grace, at most 4 hours creditable per session.
func DefaultHoursConfig() HoursConfig {
	return HoursConfig{
		MorningStart:   8,
		MorningEnd:     12,
		AfternoonStart: 13,
		AfternoonEnd:   17,
		GraceMinutes:   30,
		SessionCap:     4,
	}
}

// SessionHours is the credited outcome for one half-day session.
type SessionHours struct {
	Hours          float64
	EffectiveStart float64
	EffectiveEnd   float64
	Credited       bool
}

// DailyHours is the calculator output for one attendance day.
type DailyHours struct {
	Morning    SessionHours
	Afternoon  SessionHours
	TotalHours float64
}

// HoursCalculator converts a day's clock timestamps into credited morning
// and afternoon hours. It is pure: no I/O, no clock reads, deterministic.
type HoursCalculator struct {
	cfg HoursConfig
}

func NewHoursCalculator(cfg HoursConfig) *HoursCalculator {
	return &HoursCalculator{cfg: cfg}
}

// Calculate applies grace-period rounding, window clamping and the session
// cap to each of the day's sessions.
//
// Grace rounding: a clock-in at or after the window start is rounded to
// ceil(clockIn - grace), so anything inside the grace window credits from
// the window start and one minute past it costs the rest of that hour.
// Early arrival clamps to the window start; there is no credit before it.
func (c *HoursCalculator) Calculate(day attendance.Day) DailyHours {
	var result DailyHours
	result.Morning = c.session(day.Session(attendance.SessionMorning), c.cfg.MorningStart, c.cfg.MorningEnd)
	result.Afternoon = c.session(day.Session(attendance.SessionAfternoon), c.cfg.AfternoonStart, c.cfg.AfternoonEnd)
	result.TotalHours = round2(result.Morning.Hours + result.Afternoon.Hours)
	return result
}

func (c *HoursCalculator) session(s *attendance.Session, windowStart, windowEnd float64) SessionHours {
	if s == nil || (s.ClockIn == nil && s.ClockOut == nil) {
		return SessionHours{}
	}

	grace := float64(c.cfg.GraceMinutes) / 60

	// A session recorded with only a clock-out credits from the window
	// start; the missing clock-in cannot earn a late penalty.
	effectiveStart := windowStart
	if s.ClockIn != nil {
		in := clockHours(*s.ClockIn)
		if in >= windowStart {
			effectiveStart = math.Ceil(in - grace)
		}
	}

	// Missing clock-out assumes the session ran to window close.
	effectiveEnd := windowEnd
	if s.ClockOut != nil {
		effectiveEnd = math.Min(clockHours(*s.ClockOut), windowEnd)
	}

	raw := effectiveEnd - effectiveStart
	if raw < 0 {
		raw = 0
	}
	if raw > c.cfg.SessionCap {
		raw = c.cfg.SessionCap
	}

	return SessionHours{
		Hours:          round2(raw),
		EffectiveStart: effectiveStart,
		EffectiveEnd:   effectiveEnd,
		Credited:       raw > 0,
	}
}

// clockHours converts a timestamp to decimal hours of day.
func clockHours(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
