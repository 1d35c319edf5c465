package allowance

import (
	"strconv"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxRangeDays bounds a single breakdown query.
const MaxRangeDays = 366

type BreakdownRequest struct {
	SubjectID string `json:"subject_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *BreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SubjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject_id",
			Message: "subject_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EvaluateBreakdownRequest struct {
	Today string              `json:"today"` // YYYY-MM-DD in the org unit's zone
	Days  []AnnotatedDayInput `json:"days"`
}

func (r *EvaluateBreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Today); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "today",
			Message: "today must be in YYYY-MM-DD format",
		})
	}

	for i, d := range r.Days {
		if _, ok := validator.IsValidDate(d.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "days[" + strconv.Itoa(i) + "].date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AnnotatedDayInput struct {
	Date           string          `json:"date"`
	CheckInAt      *string         `json:"check_in_at,omitempty"`
	LeaveType      *string         `json:"leave_type,omitempty"`
	IsDutySchedule bool            `json:"is_duty_schedule"`
	Note           *string         `json:"note,omitempty"`
	LateMinutes    int             `json:"late_minutes"`
	EarnedCredit   decimal.Decimal `json:"earned_credit"`
	ExpectedUnit   decimal.Decimal `json:"expected_unit"`
}

// ToEntity converts the input; an unparseable check-in counts as absent.
func (a AnnotatedDayInput) ToEntity() AnnotatedDay {
	d, _ := dateutil.ParseDate(a.Date)
	day := AnnotatedDay{
		Date:           d,
		LeaveType:      a.LeaveType,
		IsDutySchedule: a.IsDutySchedule,
		Note:           a.Note,
		LateMinutes:    a.LateMinutes,
		EarnedCredit:   a.EarnedCredit,
		ExpectedUnit:   a.ExpectedUnit,
	}
	if a.CheckInAt != nil {
		day.CheckInAt = dateutil.ParseInstant(*a.CheckInAt)
	}
	return day
}

type BreakdownResponse struct {
	SubjectID string `json:"subject_id,omitempty"`
	Today     string `json:"today"`
	Breakdown
}
