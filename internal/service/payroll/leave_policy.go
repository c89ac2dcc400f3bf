package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
)

// LeavePaymentRule states whether a leave category is paid, at what
// percentage of the hourly-equivalent salary, and its declared yearly cap.
type LeavePaymentRule struct {
	Paid               bool
	PaymentPercentage  float64
	MaxPaidDaysPerYear *int
}

// LeavePaymentPolicy is a static lookup table keyed by leave category.
// Unknown categories are unpaid.
//
// MaxPaidDaysPerYear is declared but not enforced across pay periods:
// enforcing it needs per-employee consumption tracking that does not exist
// yet. See DESIGN.md before wiring any enforcement here.
type LeavePaymentPolicy struct {
	rules map[string]LeavePaymentRule
}

func intPtr(v int) *int { return &v }

// NewLeavePaymentPolicy returns the default policy table.
func NewLeavePaymentPolicy() *LeavePaymentPolicy {
	return &LeavePaymentPolicy{rules: map[string]LeavePaymentRule{
		"vacation":    {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(15)},
		"sick":        {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(15)},
		"maternity":   {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(105)},
		"paternity":   {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(7)},
		"bereavement": {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(3)},
		"emergency":   {Paid: true, PaymentPercentage: 100, MaxPaidDaysPerYear: intPtr(5)},
		"unpaid":      {Paid: false, PaymentPercentage: 0},
	}}
}

func (p *LeavePaymentPolicy) IsPaid(leaveType string) bool {
	return p.rules[leaveType].Paid
}

func (p *LeavePaymentPolicy) PaymentPercentage(leaveType string) float64 {
	return p.rules[leaveType].PaymentPercentage
}

func (p *LeavePaymentPolicy) MaxPaidDaysPerYear(leaveType string) *int {
	return p.rules[leaveType].MaxPaidDaysPerYear
}

// PaidLeaveHours converts the grants' days overlapping [periodStart,
// periodEnd] into paid hours: overlapDays * dayHours * percentage / 100.
func (p *LeavePaymentPolicy) PaidLeaveHours(grants []leave.Grant, periodStart, periodEnd time.Time, dayHours float64) float64 {
	var hours float64
	for _, g := range grants {
		rule := p.rules[g.LeaveType]
		if !rule.Paid {
			continue
		}
		days := overlapDays(g.StartDate, g.EndDate, periodStart, periodEnd)
		if days <= 0 {
			continue
		}
		hours += float64(days) * dayHours * rule.PaymentPercentage / 100
	}
	return round2(hours)
}

// overlapDays returns the inclusive day count of the intersection of the two
// date ranges, or 0 when they do not intersect.
func overlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
