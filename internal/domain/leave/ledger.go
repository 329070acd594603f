package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/dateutil"
)

// DefaultSickLeaveYearlyQuota is the number of sick days granted per calendar year.
const DefaultSickLeaveYearlyQuota = 12

// MaxLeaveDays is the longest single request, one leap year.
const MaxLeaveDays = 366

// CountDays returns the inclusive length of [start, end].
func CountDays(start, end time.Time) (int, error) {
	diff := dateutil.DaysBetween(start, end)
	if diff < 0 {
		return 0, ErrInvalidDateRange
	}
	if diff+1 > MaxLeaveDays {
		return 0, ErrLeaveSpanTooLong
	}
	return diff + 1, nil
}

// SickLeaveTakenInMonth reports whether an approved sick leave of existing
// starts in the same month and year as start. Only start dates are compared.
func SickLeaveTakenInMonth(existing []LeaveRequest, start time.Time) bool {
	for _, r := range existing {
		if r.LeaveType != LeaveTypeSick || !r.IsApproved() {
			continue
		}
		if r.StartDate.Year() == start.Year() && r.StartDate.Month() == start.Month() {
			return true
		}
	}
	return false
}

// SickDaysUsed sums days of approved sick leave starting in year.
func SickDaysUsed(requests []LeaveRequest, year int) int {
	used := 0
	for _, r := range requests {
		if r.LeaveType == LeaveTypeSick && r.IsApproved() && r.StartDate.Year() == year {
			used += r.Days
		}
	}
	return used
}

// SickLeaveRemaining is quota minus used, floored at zero.
func SickLeaveRemaining(quota, used int) int {
	return max(quota-used, 0)
}

// ResolvePayType returns the pay type stored when a request is approved.
// Sick leave is always paid; casual leave keeps the explicit choice or stays undecided.
func ResolvePayType(t LeaveType, requested *PayType) *PayType {
	if t == LeaveTypeSick {
		paid := PayTypePaid
		return &paid
	}
	if requested == nil {
		return nil
	}
	p := *requested
	return &p
}

// Covers reports whether an approved request includes date.
func Covers(r LeaveRequest, date time.Time) bool {
	return r.IsApproved() && dateutil.Within(date, r.StartDate, r.EndDate)
}

// Summarize aggregates balance and current-month counters as of asOf.
func Summarize(employeeID string, requests []LeaveRequest, quota int, asOf time.Time) BalanceResponse {
	year, month := asOf.Year(), asOf.Month()
	used := SickDaysUsed(requests, year)

	b := BalanceResponse{
		EmployeeID:        employeeID,
		Year:              year,
		Month:             int(month),
		SickQuota:         quota,
		SickTakenThisYear: used,
		SickRemaining:     SickLeaveRemaining(quota, used),
	}

	for _, r := range requests {
		inMonth := r.StartDate.Year() == year && r.StartDate.Month() == month
		if !inMonth {
			continue
		}
		switch r.Status {
		case LeaveRequestStatusApproved:
			b.ApprovedThisMonth++
			if r.LeaveType == LeaveTypeSick {
				b.SickTakenThisMonth += r.Days
			} else {
				b.CasualTakenThisMonth += r.Days
			}
		case LeaveRequestStatusRejected:
			b.RejectedThisMonth++
		case LeaveRequestStatusPending:
			b.PendingThisMonth++
		}
	}

	b.SickAvailableThisMonth = !SickLeaveTakenInMonth(requests, asOf) && b.SickRemaining > 0
	return b
}
