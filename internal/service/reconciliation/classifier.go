package reconciliation

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
)

// SideInput is everything the per-side classifier reads for one civil date.
type SideInput struct {
	Date     time.Time
	Record   *attendance.AttendanceRecord
	Calendar *calendar.CalendarDay
	Grant    *leave.LeaveGrant
	Pending  bool
	Location *time.Location
}

// sideLeave is the leave override in force for one side.
type sideLeave struct {
	leaveType attendance.LeaveType
	notes     *string
}

// ClassifySides classifies the in-side and the out-side of a day independently.
// The first matching rule wins:
//
//  1. pending day: PENDING_TODAY on both sides
//  2. no check-in and no check-out: LEAVE when an override exists, else MISSING_BOTH
//  3. the side's own timestamp is absent while the other is present: MISSING_IN / MISSING_OUT
//  4. the side has a non-NORMAL leave override: LEAVE
//  5. time comparison against the calendar's expected start/end
//
// The record's own per-side leave type wins over an approved grant covering the date.
// Manual records mark every emitted status as manual.
func ClassifySides(in SideInput) (reconciliation.SideStatus, reconciliation.SideStatus) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	var inStatus, outStatus reconciliation.SideStatus
	rec := in.Record

	switch {
	case in.Pending:
		inStatus = reconciliation.SideStatus{Code: reconciliation.SidePendingToday}
		outStatus = reconciliation.SideStatus{Code: reconciliation.SidePendingToday}

	case !rec.HasCheckIn() && !rec.HasCheckOut():
		inLeave, inOK := leaveForSide(rec, in.Grant, true)
		outLeave, outOK := leaveForSide(rec, in.Grant, false)
		switch {
		case inOK || outOK:
			if !inOK {
				inLeave = outLeave
			}
			if !outOK {
				outLeave = inLeave
			}
			inStatus = leaveStatus(inLeave)
			outStatus = leaveStatus(outLeave)
		default:
			inStatus = reconciliation.SideStatus{Code: reconciliation.SideMissingBoth}
			outStatus = reconciliation.SideStatus{Code: reconciliation.SideMissingBoth}
		}

	default:
		inStatus = classifyIn(in.Date, rec, in.Calendar, in.Grant, loc)
		outStatus = classifyOut(in.Date, rec, in.Calendar, in.Grant, loc)
	}

	if rec != nil && rec.IsManual {
		inStatus.Manual, inStatus.ManualNote = true, rec.ManualNote
		outStatus.Manual, outStatus.ManualNote = true, rec.ManualNote
	}

	return inStatus, outStatus
}

func classifyIn(date time.Time, rec *attendance.AttendanceRecord, cal *calendar.CalendarDay, grant *leave.LeaveGrant, loc *time.Location) reconciliation.SideStatus {
	if !rec.HasCheckIn() {
		return reconciliation.SideStatus{Code: reconciliation.SideMissingIn}
	}
	if l, ok := leaveForSide(rec, grant, true); ok {
		return leaveStatus(l)
	}

	detail := rec.CheckInGeofenceName
	expected, ok := expectedMinutes(cal, true)
	if !ok {
		return reconciliation.SideStatus{Code: reconciliation.SideNormal, Detail: detail}
	}

	// Strict comparison: no tolerance at this layer.
	actual := dateutil.MinutesFrom(date, *rec.CheckInAt, loc)
	if actual > expected {
		return reconciliation.SideStatus{
			Code:    reconciliation.SideLate,
			Detail:  detail,
			Minutes: actual - expected,
		}
	}
	return reconciliation.SideStatus{Code: reconciliation.SideNormal, Detail: detail}
}

func classifyOut(date time.Time, rec *attendance.AttendanceRecord, cal *calendar.CalendarDay, grant *leave.LeaveGrant, loc *time.Location) reconciliation.SideStatus {
	if !rec.HasCheckOut() {
		return reconciliation.SideStatus{Code: reconciliation.SideMissingOut}
	}
	if l, ok := leaveForSide(rec, grant, false); ok {
		return leaveStatus(l)
	}

	geofence := rec.CheckOutGeofenceName
	expected, ok := expectedMinutes(cal, false)
	if !ok {
		return reconciliation.SideStatus{Code: reconciliation.SideNormal, Detail: geofence}
	}

	actual := dateutil.MinutesFrom(date, *rec.CheckOutAt, loc)
	early := max(0, expected-actual)
	if early > 0 {
		return reconciliation.SideStatus{
			Code:    reconciliation.SideEarlyOut,
			Detail:  earlyDetail(geofence, early),
			Minutes: early,
		}
	}
	return reconciliation.SideStatus{Code: reconciliation.SideNormal, Detail: geofence}
}

// expectedMinutes returns the calendar's expected start (in-side) or end
// (out-side) as minutes of day. Missing or unparseable values mean "no expectation".
func expectedMinutes(cal *calendar.CalendarDay, inSide bool) (int, bool) {
	if cal == nil {
		return 0, false
	}
	raw := cal.ExpectedEnd
	if inSide {
		raw = cal.ExpectedStart
	}
	if raw == nil {
		return 0, false
	}
	return dateutil.ParseTimeOfDay(*raw)
}

// leaveForSide returns the override in force for one side: the record's own
// non-NORMAL leave type first, then the approved grant covering the date.
func leaveForSide(rec *attendance.AttendanceRecord, grant *leave.LeaveGrant, inSide bool) (sideLeave, bool) {
	if rec != nil {
		own, notes := rec.CheckOutLeaveType, rec.CheckOutLeaveNotes
		if inSide {
			own, notes = rec.CheckInLeaveType, rec.CheckInLeaveNotes
		}
		if attendance.IsOverridePtr(own) {
			return sideLeave{leaveType: *own, notes: notes}, true
		}
	}
	if grant != nil && grant.LeaveType.IsOverride() {
		return sideLeave{leaveType: grant.LeaveType, notes: grant.Reason}, true
	}
	return sideLeave{}, false
}

func leaveStatus(l sideLeave) reconciliation.SideStatus {
	return reconciliation.SideStatus{
		Code:      reconciliation.SideLeave,
		LeaveType: string(l.leaveType),
		Label:     l.leaveType.Label(),
		Detail:    l.notes,
	}
}

func earlyDetail(geofence *string, minutes int) *string {
	detail := fmt.Sprintf("%d m", minutes)
	if geofence != nil && *geofence != "" {
		detail = *geofence + " - " + detail
	}
	return &detail
}
