package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListDays(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Day, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT employee_id, date, morning_in, morning_out, afternoon_in, afternoon_out
		FROM attendance_days
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days: %w", err)
	}
	defer rows.Close()

	var days []attendance.Day
	for rows.Next() {
		var (
			day                       attendance.Day
			morningIn, morningOut     *time.Time
			afternoonIn, afternoonOut *time.Time
		)
		if err := rows.Scan(&day.EmployeeID, &day.Date, &morningIn, &morningOut, &afternoonIn, &afternoonOut); err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}

		if morningIn != nil || morningOut != nil {
			day.Sessions = append(day.Sessions, attendance.Session{
				Kind:     attendance.SessionMorning,
				ClockIn:  morningIn,
				ClockOut: morningOut,
			})
		}
		if afternoonIn != nil || afternoonOut != nil {
			day.Sessions = append(day.Sessions, attendance.Session{
				Kind:     attendance.SessionAfternoon,
				ClockIn:  afternoonIn,
				ClockOut: afternoonOut,
			})
		}

		days = append(days, day)
	}

	return days, rows.Err()
}
