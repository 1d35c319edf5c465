package allowance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayKind is the coarse kind the allowance breakdown groups days by.
type DayKind string

const (
	DayKindPresent DayKind = "PRESENT"
	DayKindAbsent  DayKind = "ABSENT"
	DayKindLeave   DayKind = "LEAVE"
	DayKindDuty    DayKind = "DUTY"
	DayKindOther   DayKind = "OTHER"
)

// Note tags attached upstream.
const (
	NoteWorkday        = "WORKDAY"
	NoteHalfDay        = "HALFDAY"
	NoteHolidayIgnored = "HOLIDAY_IGNORED"
	NoteDinasLuar      = "DINASLUAR"
)

// AnnotatedDay is one day of the allowance server's per-day output. Credits
// are already computed upstream; this service only classifies and sums them.
type AnnotatedDay struct {
	SubjectID      string
	Date           time.Time
	CheckInAt      *time.Time
	LeaveType      *string
	IsDutySchedule bool
	Note           *string
	LateMinutes    int
	EarnedCredit   decimal.Decimal
	ExpectedUnit   decimal.Decimal
}

// ClassifiedDay is an AnnotatedDay with its kind and display label.
type ClassifiedDay struct {
	Date         string          `json:"date"`
	Kind         DayKind         `json:"kind"`
	Label        string          `json:"label"`
	LateMinutes  int             `json:"late_minutes,omitempty"`
	EarnedCredit decimal.Decimal `json:"earned_credit"`
	ExpectedUnit decimal.Decimal `json:"expected_unit"`
}

// KindCounts counts classified days per kind.
type KindCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	Duty    int `json:"duty"`
	Other   int `json:"other"`
}

// Breakdown is the classified day list with its totals. CreditRatio is
// EarnedCredit / ExpectedUnit, zero when nothing was expected.
type Breakdown struct {
	Days         []ClassifiedDay `json:"days"`
	Counts       KindCounts      `json:"counts"`
	EarnedCredit decimal.Decimal `json:"earned_credit"`
	ExpectedUnit decimal.Decimal `json:"expected_unit"`
	CreditRatio  decimal.Decimal `json:"credit_ratio"`
}
