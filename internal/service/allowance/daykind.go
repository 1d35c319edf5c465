package allowance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/allowance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ClassifyDay maps an annotated day to its kind and label. Leave beats duty,
// duty beats the WORKDAY/HALFDAY attendance check.
func ClassifyDay(day allowance.AnnotatedDay) (allowance.DayKind, string) {
	note := ""
	if day.Note != nil {
		note = strings.TrimSpace(*day.Note)
	}
	tag := strings.ToUpper(note)

	if day.LeaveType != nil {
		if lt := attendance.ParseLeaveType(*day.LeaveType); lt != nil {
			if *lt == attendance.LeaveTypeDinasLuar && tag == allowance.NoteDinasLuar {
				return allowance.DayKindLeave, "DINAS LUAR"
			}
			return allowance.DayKindLeave, lt.BreakdownLabel()
		}
	}

	if day.IsDutySchedule {
		label := note
		if label == "" {
			label = "DUTY SCHEDULE"
		}
		if day.EarnedCredit.IsZero() {
			label += " - TANPA ABSEN"
		}
		return allowance.DayKindDuty, label
	}

	if tag == allowance.NoteWorkday || tag == allowance.NoteHalfDay {
		if day.CheckInAt == nil {
			return allowance.DayKindAbsent, "TIDAK HADIR"
		}
		if day.LateMinutes > 0 {
			return allowance.DayKindPresent, fmt.Sprintf("HADIR - Telat %d m", day.LateMinutes)
		}
		return allowance.DayKindPresent, "HADIR"
	}

	if note == "" {
		return allowance.DayKindOther, "UNKNOWN"
	}
	return allowance.DayKindOther, note
}

// Reportable drops HOLIDAY_IGNORED days and days after today. Order is kept.
func Reportable(days []allowance.AnnotatedDay, today time.Time) []allowance.AnnotatedDay {
	today = dateutil.Civil(today)

	kept := make([]allowance.AnnotatedDay, 0, len(days))
	for _, day := range days {
		if day.Note != nil && strings.ToUpper(strings.TrimSpace(*day.Note)) == allowance.NoteHolidayIgnored {
			continue
		}
		if dateutil.Civil(day.Date).After(today) {
			continue
		}
		kept = append(kept, day)
	}
	return kept
}

// Breakdown filters, classifies and totals the days.
func Breakdown(days []allowance.AnnotatedDay, today time.Time) allowance.Breakdown {
	out := allowance.Breakdown{
		Days:         make([]allowance.ClassifiedDay, 0, len(days)),
		EarnedCredit: decimal.Zero,
		ExpectedUnit: decimal.Zero,
		CreditRatio:  decimal.Zero,
	}

	for _, day := range Reportable(days, today) {
		kind, label := ClassifyDay(day)

		switch kind {
		case allowance.DayKindPresent:
			out.Counts.Present++
		case allowance.DayKindAbsent:
			out.Counts.Absent++
		case allowance.DayKindLeave:
			out.Counts.Leave++
		case allowance.DayKindDuty:
			out.Counts.Duty++
		default:
			out.Counts.Other++
		}

		out.EarnedCredit = out.EarnedCredit.Add(day.EarnedCredit)
		out.ExpectedUnit = out.ExpectedUnit.Add(day.ExpectedUnit)
		out.Days = append(out.Days, allowance.ClassifiedDay{
			Date:         dateutil.DateKey(day.Date),
			Kind:         kind,
			Label:        label,
			LateMinutes:  day.LateMinutes,
			EarnedCredit: day.EarnedCredit,
			ExpectedUnit: day.ExpectedUnit,
		})
	}

	if !out.ExpectedUnit.IsZero() {
		out.CreditRatio = out.EarnedCredit.DivRound(out.ExpectedUnit, 4)
	}

	return out
}
