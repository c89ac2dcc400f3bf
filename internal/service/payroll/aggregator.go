package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
)

// AttendanceTotals is one employee's attendance aggregate over a date range.
type AttendanceTotals struct {
	TotalWorkedHours   float64
	TotalRegularHours  float64
	TotalOvertimeHours float64
	TotalLateHours     float64
	WorkingDays        int
}

// AttendanceAggregator sums per-day calculator output over a date range.
type AttendanceAggregator struct {
	attendanceRepo attendance.AttendanceRepository
	hours          *HoursCalculator
	standardDay    float64
}

func NewAttendanceAggregator(attendanceRepo attendance.AttendanceRepository, hours *HoursCalculator, standardDay float64) *AttendanceAggregator {
	return &AttendanceAggregator{
		attendanceRepo: attendanceRepo,
		hours:          hours,
		standardDay:    standardDay,
	}
}

// Aggregate loads the employee's recorded days in [from, to] and sums the
// calculator output. Each day splits into regular hours, capped at the
// standard day, and overtime above it.
//
// TotalLateHours stays 0: attendance records carry no tardiness source to
// aggregate from. The field flows through to the settlement so a source can
// be wired in without touching the calculators.
func (a *AttendanceAggregator) Aggregate(ctx context.Context, employeeID string, from, to time.Time) (AttendanceTotals, error) {
	days, err := a.attendanceRepo.ListDays(ctx, employeeID, from, to)
	if err != nil {
		return AttendanceTotals{}, fmt.Errorf("failed to load attendance days: %w", err)
	}

	var totals AttendanceTotals
	for _, day := range days {
		daily := a.hours.Calculate(day)
		if daily.TotalHours <= 0 {
			continue
		}

		regular := daily.TotalHours
		overtime := 0.0
		if regular > a.standardDay {
			overtime = regular - a.standardDay
			regular = a.standardDay
		}

		totals.TotalWorkedHours += daily.TotalHours
		totals.TotalRegularHours += regular
		totals.TotalOvertimeHours += overtime
		totals.WorkingDays++
	}

	totals.TotalWorkedHours = round2(totals.TotalWorkedHours)
	totals.TotalRegularHours = round2(totals.TotalRegularHours)
	totals.TotalOvertimeHours = round2(totals.TotalOvertimeHours)
	totals.TotalLateHours = round2(totals.TotalLateHours)

	return totals, nil
}
