package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestLeavePaymentPolicy_Lookup(t *testing.T) {
	policy := NewLeavePaymentPolicy()

	assert.True(t, policy.IsPaid("vacation"))
	assert.True(t, policy.IsPaid("sick"))
	assert.False(t, policy.IsPaid("unpaid"))
	assert.False(t, policy.IsPaid("sabbatical"), "unknown categories are unpaid")

	assert.Equal(t, 100.0, policy.PaymentPercentage("vacation"))
	assert.Equal(t, 0.0, policy.PaymentPercentage("unpaid"))

	if limit := policy.MaxPaidDaysPerYear("maternity"); assert.NotNil(t, limit) {
		assert.Equal(t, 105, *limit)
	}
	assert.Nil(t, policy.MaxPaidDaysPerYear("unpaid"))
}

func TestLeavePaymentPolicy_PaidLeaveHours(t *testing.T) {
	policy := NewLeavePaymentPolicy()
	periodStart := date(2025, 6, 1)
	periodEnd := date(2025, 6, 30)

	cases := []struct {
		name   string
		grants []leave.Grant
		want   float64
	}{
		{
			name: "grant fully inside the period",
			grants: []leave.Grant{
				{LeaveType: "vacation", StartDate: date(2025, 6, 10), EndDate: date(2025, 6, 12), Status: leave.GrantStatusApproved},
			},
			want: 24,
		},
		{
			name: "grant clipped at the period boundary",
			grants: []leave.Grant{
				{LeaveType: "sick", StartDate: date(2025, 5, 28), EndDate: date(2025, 6, 2), Status: leave.GrantStatusApproved},
			},
			want: 16,
		},
		{
			name: "unpaid grant contributes nothing",
			grants: []leave.Grant{
				{LeaveType: "unpaid", StartDate: date(2025, 6, 5), EndDate: date(2025, 6, 9), Status: leave.GrantStatusApproved},
			},
			want: 0,
		},
		{
			name: "grant entirely outside the period",
			grants: []leave.Grant{
				{LeaveType: "vacation", StartDate: date(2025, 7, 1), EndDate: date(2025, 7, 3), Status: leave.GrantStatusApproved},
			},
			want: 0,
		},
		{
			name: "mixed grants sum across categories",
			grants: []leave.Grant{
				{LeaveType: "vacation", StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 3), Status: leave.GrantStatusApproved},
				{LeaveType: "bereavement", StartDate: date(2025, 6, 16), EndDate: date(2025, 6, 16), Status: leave.GrantStatusApproved},
				{LeaveType: "unpaid", StartDate: date(2025, 6, 20), EndDate: date(2025, 6, 24), Status: leave.GrantStatusApproved},
			},
			want: 24,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.PaidLeaveHours(tc.grants, periodStart, periodEnd, 8)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlapDays(t *testing.T) {
	assert.Equal(t, 3, overlapDays(date(2025, 6, 10), date(2025, 6, 12), date(2025, 6, 1), date(2025, 6, 30)))
	assert.Equal(t, 1, overlapDays(date(2025, 6, 30), date(2025, 7, 5), date(2025, 6, 1), date(2025, 6, 30)))
	assert.Equal(t, 0, overlapDays(date(2025, 7, 1), date(2025, 7, 5), date(2025, 6, 1), date(2025, 6, 30)))
}
