package reconciliation

import (
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
)

// Aggregate folds day statuses into range counters. Pending days are skipped.
// A leave day counts as present plus its leave counter and nothing else; a
// MISSING_BOTH day counts as absent only on a working day.
func Aggregate(days []reconciliation.DayStatus) reconciliation.RangeSummary {
	var s reconciliation.RangeSummary

	for _, day := range days {
		if day.Kind == reconciliation.KindPending {
			continue
		}

		working := calendar.DayType(day.DayType).IsWorking()
		if working {
			s.TotalWorkingDays++
		}

		if day.LeaveType != "" {
			countLeave(&s, attendance.LeaveType(day.LeaveType))
			s.Present++
			continue
		}

		if day.InStatus.Code == reconciliation.SideMissingBoth {
			if working {
				s.AbsentNoRecord++
			}
			continue
		}

		s.Present++
		if day.InStatus.Code == reconciliation.SideMissingIn {
			s.MissingIn++
		}
		if day.OutStatus.Code == reconciliation.SideMissingOut {
			s.MissingOut++
		}
		if day.OutStatus.Code == reconciliation.SideEarlyOut {
			s.EarlyOut++
		}
		if day.InStatus.Code == reconciliation.SideLate {
			s.Late++
		}
	}

	return s
}

func countLeave(s *reconciliation.RangeSummary, t attendance.LeaveType) {
	switch t {
	case attendance.LeaveTypeDinasLuar:
		s.DinasLuar++
	case attendance.LeaveTypeWFA:
		s.WFA++
	case attendance.LeaveTypeWFH:
		s.WFH++
	case attendance.LeaveTypeIjin:
		s.Ijin++
	case attendance.LeaveTypeSakit:
		s.Sakit++
	case attendance.LeaveTypeCuti:
		s.Cuti++
	}
}
