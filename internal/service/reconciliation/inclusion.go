package reconciliation

import (
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
)

// ShouldEvaluate decides whether a civil date is evaluated at all. Both dates
// must already be civil dates in the org unit's zone.
//
// Future dates are always excluded. Today is pending only when showToday is
// set; a pending day is never absent and never counted.
func ShouldEvaluate(date, today time.Time, showToday bool) reconciliation.Inclusion {
	switch {
	case date.After(today):
		return reconciliation.Exclude
	case date.Equal(today):
		if showToday {
			return reconciliation.Pending
		}
		return reconciliation.Exclude
	default:
		return reconciliation.Evaluate
	}
}

// DropsHoliday reports whether an evaluated date is not reportable: a HOLIDAY
// with no duty, no attendance record and no approved leave.
func DropsHoliday(cal *calendar.CalendarDay, hasDuty, hasRecord, hasLeave bool) bool {
	if cal == nil || cal.DayType != calendar.DayTypeHoliday {
		return false
	}
	return !hasDuty && !hasRecord && !hasLeave
}
