package reconciliation

import (
	"slices"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/duty"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single query.
const MaxRangeDays = 366

// ========================================
// RECONCILE DTOs
// ========================================

type ReconcileRequest struct {
	SubjectID string `json:"subject_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	ShowToday bool   `json:"show_today"`
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject_id",
			Message: "subject_id is required",
		})
	}

	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateRange(startDate, endDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(startDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(endDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if len(dateutil.DaysBetween(start, end)) > MaxRangeDays {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed " + strconv.Itoa(MaxRangeDays) + " days",
			})
		}
	}

	return errs
}

type ReconcileResponse struct {
	SubjectID string       `json:"subject_id"`
	OrgUnitID string       `json:"org_unit_id,omitempty"`
	Timezone  string       `json:"timezone"`
	Today     string       `json:"today"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Days      []DayStatus  `json:"days"`
	Summary   RangeSummary `json:"summary"`
}

// ========================================
// EVALUATE DTOs
// ========================================

// EvaluateRequest carries already-fetched fact streams. Malformed timestamps
// and times degrade to "absent" rather than failing the request.
type EvaluateRequest struct {
	SubjectID string                  `json:"subject_id"`
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Today     string                  `json:"today"`
	Timezone  string                  `json:"timezone"`
	ShowToday bool                    `json:"show_today"`
	Calendar  []CalendarDayInput      `json:"calendar"`
	Records   []AttendanceRecordInput `json:"records"`
	Leaves    []LeaveGrantInput       `json:"leaves"`
	Duties    []DutyAssignmentInput   `json:"duties"`
}

func (r *EvaluateRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)

	if _, ok := validator.IsValidDate(r.Today); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "today",
			Message: "today must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	for i, c := range r.Calendar {
		if _, ok := validator.IsValidDate(c.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "calendar[" + strconv.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if !slices.Contains([]string{string(calendar.DayTypeWorkday), string(calendar.DayTypeHalfDay), string(calendar.DayTypeHoliday)}, c.DayType) {
			errs = append(errs, validator.ValidationError{
				Field:   "calendar[" + strconv.Itoa(i) + "].day_type",
				Message: "day_type must be one of: WORKDAY, HALF_DAY, HOLIDAY",
			})
		}
	}

	for i, rec := range r.Records {
		if _, ok := validator.IsValidDate(rec.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "records[" + strconv.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	for i, l := range r.Leaves {
		_, startOK := validator.IsValidDate(l.StartDate)
		_, endOK := validator.IsValidDate(l.EndDate)
		if !startOK || !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "leaves[" + strconv.Itoa(i) + "]",
				Message: "start_date and end_date must be in YYYY-MM-DD format",
			})
		}
	}

	for i, d := range r.Duties {
		if dateutil.ParseInstant(d.StartAt) == nil || dateutil.ParseInstant(d.EndAt) == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "duties[" + strconv.Itoa(i) + "]",
				Message: "start_at and end_at must be RFC3339 timestamps",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalendarDayInput struct {
	Date          string  `json:"date"`
	DayType       string  `json:"day_type"`
	ExpectedStart *string `json:"expected_start,omitempty"` // HH:MM:SS
	ExpectedEnd   *string `json:"expected_end,omitempty"`   // HH:MM:SS
	Note          *string `json:"note,omitempty"`
}

func (c CalendarDayInput) ToEntity() calendar.CalendarDay {
	d, _ := dateutil.ParseDate(c.Date)
	return calendar.CalendarDay{
		Date:          d,
		DayType:       calendar.DayType(c.DayType),
		ExpectedStart: c.ExpectedStart,
		ExpectedEnd:   c.ExpectedEnd,
		Note:          c.Note,
	}
}

type AttendanceRecordInput struct {
	ID                   string   `json:"id,omitempty"`
	Date                 string   `json:"date"`
	CheckInAt            *string  `json:"check_in_at,omitempty"`
	CheckOutAt           *string  `json:"check_out_at,omitempty"`
	CheckInLeaveType     *string  `json:"check_in_leave_type,omitempty"`
	CheckOutLeaveType    *string  `json:"check_out_leave_type,omitempty"`
	CheckInLeaveNotes    *string  `json:"check_in_leave_notes,omitempty"`
	CheckOutLeaveNotes   *string  `json:"check_out_leave_notes,omitempty"`
	CheckInGeofenceName  *string  `json:"check_in_geofence_name,omitempty"`
	CheckOutGeofenceName *string  `json:"check_out_geofence_name,omitempty"`
	CheckInDistanceM     *float64 `json:"check_in_distance_m,omitempty"`
	CheckOutDistanceM    *float64 `json:"check_out_distance_m,omitempty"`
	IsManual             bool     `json:"is_manual"`
	ManualNote           *string  `json:"manual_note,omitempty"`
}

// ToEntity converts the input; an unparseable timestamp becomes an absent side.
func (a AttendanceRecordInput) ToEntity(subjectID string) attendance.AttendanceRecord {
	d, _ := dateutil.ParseDate(a.Date)
	return attendance.AttendanceRecord{
		ID:                   a.ID,
		SubjectID:            subjectID,
		Date:                 d,
		CheckInAt:            parseInstantPtr(a.CheckInAt),
		CheckOutAt:           parseInstantPtr(a.CheckOutAt),
		CheckInLeaveType:     parseLeaveTypePtr(a.CheckInLeaveType),
		CheckOutLeaveType:    parseLeaveTypePtr(a.CheckOutLeaveType),
		CheckInLeaveNotes:    a.CheckInLeaveNotes,
		CheckOutLeaveNotes:   a.CheckOutLeaveNotes,
		CheckInGeofenceName:  a.CheckInGeofenceName,
		CheckOutGeofenceName: a.CheckOutGeofenceName,
		CheckInDistanceM:     a.CheckInDistanceM,
		CheckOutDistanceM:    a.CheckOutDistanceM,
		IsManual:             a.IsManual,
		ManualNote:           a.ManualNote,
	}
}

type LeaveGrantInput struct {
	ID        string  `json:"id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	Reason    *string `json:"reason,omitempty"`
}

func (l LeaveGrantInput) ToEntity(subjectID string) leave.LeaveGrant {
	start, _ := dateutil.ParseDate(l.StartDate)
	end, _ := dateutil.ParseDate(l.EndDate)
	leaveType := attendance.LeaveTypeNormal
	if lt := attendance.ParseLeaveType(l.LeaveType); lt != nil {
		leaveType = *lt
	}
	return leave.LeaveGrant{
		ID:        l.ID,
		SubjectID: subjectID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Status:    leave.GrantStatus(l.Status),
		Reason:    l.Reason,
	}
}

type DutyAssignmentInput struct {
	ID           string  `json:"id"`
	StartAt      string  `json:"start_at"`
	EndAt        string  `json:"end_at"`
	Title        *string `json:"title,omitempty"`
	ScheduleType string  `json:"schedule_type"`
	Note         *string `json:"note,omitempty"`
}

func (d DutyAssignmentInput) ToEntity(subjectID string) duty.DutyAssignment {
	var start, end time.Time
	if t := dateutil.ParseInstant(d.StartAt); t != nil {
		start = *t
	}
	if t := dateutil.ParseInstant(d.EndAt); t != nil {
		end = *t
	}
	return duty.DutyAssignment{
		ID:           d.ID,
		SubjectID:    subjectID,
		StartAt:      start,
		EndAt:        end,
		Title:        d.Title,
		ScheduleType: d.ScheduleType,
		Note:         d.Note,
	}
}

func parseInstantPtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return dateutil.ParseInstant(*s)
}

func parseLeaveTypePtr(s *string) *attendance.LeaveType {
	if s == nil {
		return nil
	}
	return attendance.ParseLeaveType(*s)
}
