package reconciliation

import (
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/duty"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
)

// Input is one subject's fact streams over an inclusive civil range.
// Start, End and Today are civil dates in Location.
type Input struct {
	SubjectID string
	Start     time.Time
	End       time.Time
	Today     time.Time
	ShowToday bool
	Location  *time.Location

	Calendar []calendar.CalendarDay
	Records  []attendance.AttendanceRecord
	Leaves   []leave.LeaveGrant
	Duties   []duty.DutyAssignment

	Logger *slog.Logger
}

// Result holds the reported days in ascending date order and their summary.
type Result struct {
	Days    []reconciliation.DayStatus
	Summary reconciliation.RangeSummary
}

// Reconcile classifies every reportable date in the range. It is pure: the
// same input always yields the same result. Facts dated outside the range are
// ignored. When a date carries several calendar days or records, the first in
// input order is used.
func Reconcile(in Input) Result {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}

	start, end, today := dateutil.Civil(in.Start), dateutil.Civil(in.End), dateutil.Civil(in.Today)

	calByDate := make(map[string]*calendar.CalendarDay, len(in.Calendar))
	for i := range in.Calendar {
		key := dateutil.DateKey(in.Calendar[i].Date)
		if _, ok := calByDate[key]; !ok {
			calByDate[key] = &in.Calendar[i]
		}
	}

	recByDate := make(map[string]*attendance.AttendanceRecord, len(in.Records))
	for i := range in.Records {
		key := dateutil.DateKey(in.Records[i].Date)
		if _, ok := recByDate[key]; ok {
			logger.Warn("duplicate attendance record for date, keeping first",
				slog.String("subject_id", in.SubjectID),
				slog.String("date", key),
				slog.String("record_id", in.Records[i].ID),
			)
			continue
		}
		recByDate[key] = &in.Records[i]
	}

	dutyByDate := ProjectDuties(in.Duties, loc)

	days := make([]reconciliation.DayStatus, 0)
	for _, date := range dateutil.DaysBetween(start, end) {
		inclusion := ShouldEvaluate(date, today, in.ShowToday)
		if inclusion == reconciliation.Exclude {
			continue
		}

		key := dateutil.DateKey(date)
		cal := calByDate[key]
		rec := recByDate[key]
		duties := dutyByDate[key]
		grant, ambiguous := ResolveLeave(in.Leaves, date)

		if inclusion == reconciliation.Evaluate && DropsHoliday(cal, len(duties) > 0, rec != nil, grant != nil) {
			continue
		}

		if ambiguous {
			logger.Warn("overlapping approved leave grants, using earliest",
				slog.String("subject_id", in.SubjectID),
				slog.String("date", key),
				slog.String("leave_id", grant.ID),
			)
		}

		days = append(days, buildDay(date, inclusion, cal, rec, grant, duties, ambiguous, loc))
	}

	return Result{
		Days:    days,
		Summary: Aggregate(days),
	}
}

func buildDay(
	date time.Time,
	inclusion reconciliation.Inclusion,
	cal *calendar.CalendarDay,
	rec *attendance.AttendanceRecord,
	grant *leave.LeaveGrant,
	duties []duty.DutyAssignment,
	ambiguous bool,
	loc *time.Location,
) reconciliation.DayStatus {
	pending := inclusion == reconciliation.Pending
	inStatus, outStatus := ClassifySides(SideInput{
		Date:     date,
		Record:   rec,
		Calendar: cal,
		Grant:    grant,
		Pending:  pending,
		Location: loc,
	})

	day := reconciliation.DayStatus{
		Date:          dateutil.DateKey(date),
		InStatus:      inStatus,
		OutStatus:     outStatus,
		HasDuty:       len(duties) > 0,
		DutyLabel:     DutyLabel(duties),
		LeaveConflict: ambiguous,
	}

	var dayType calendar.DayType
	if cal != nil {
		dayType = cal.DayType
		day.DayType = string(cal.DayType)
	}

	if rec != nil && rec.IsManual {
		day.IsManual = true
		day.ManualNote = rec.ManualNote
	}

	if !pending {
		if l, ok := leaveForSide(rec, grant, true); ok {
			day.LeaveType = string(l.leaveType)
		} else if l, ok := leaveForSide(rec, grant, false); ok {
			day.LeaveType = string(l.leaveType)
		}
	}

	if inStatus.Code == reconciliation.SideLate {
		minutes := inStatus.Minutes
		day.LateMinutes = &minutes
	}
	if outStatus.Code == reconciliation.SideEarlyOut {
		minutes := outStatus.Minutes
		day.EarlyMinutes = &minutes
	}

	day.Kind = deriveKind(day, dayType.IsWorking())
	return day
}

// deriveKind maps both sides to one day-level kind. Duty never turns an
// absent working day into anything else.
func deriveKind(day reconciliation.DayStatus, working bool) reconciliation.StatusKind {
	switch {
	case day.InStatus.Code == reconciliation.SidePendingToday:
		return reconciliation.KindPending
	case day.LeaveType != "":
		return reconciliation.KindOnLeave
	case day.InStatus.Code == reconciliation.SideMissingBoth:
		switch {
		case working:
			return reconciliation.KindAbsent
		case day.HasDuty:
			return reconciliation.KindOnDuty
		default:
			return reconciliation.KindOff
		}
	case day.InStatus.Code == reconciliation.SideMissingIn:
		return reconciliation.KindMissingIn
	case day.OutStatus.Code == reconciliation.SideMissingOut:
		return reconciliation.KindMissingOut
	case day.InStatus.Code == reconciliation.SideLate:
		return reconciliation.KindLate
	case day.OutStatus.Code == reconciliation.SideEarlyOut:
		return reconciliation.KindEarlyLeave
	default:
		return reconciliation.KindPresent
	}
}
