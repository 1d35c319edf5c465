package reconciliation

// Inclusion is the verdict of the inclusion policy for one date.
type Inclusion int

const (
	Evaluate Inclusion = iota
	Pending
	Exclude
)

func (i Inclusion) String() string {
	switch i {
	case Evaluate:
		return "EVALUATE"
	case Pending:
		return "PENDING"
	default:
		return "EXCLUDE"
	}
}

// SideCode classifies one side (in or out) of a day.
type SideCode string

const (
	SidePendingToday SideCode = "PENDING_TODAY"
	SideMissingIn    SideCode = "MISSING_IN"
	SideMissingOut   SideCode = "MISSING_OUT"
	SideMissingBoth  SideCode = "MISSING_BOTH"
	SideLeave        SideCode = "LEAVE"
	SideLate         SideCode = "LATE"
	SideEarlyOut     SideCode = "EARLY_OUT"
	SideNormal       SideCode = "NORMAL"
)

// SideStatus is the classification of one side. LeaveType and Label are set
// for LEAVE; Minutes is set for LATE and EARLY_OUT.
type SideStatus struct {
	Code       SideCode `json:"code"`
	LeaveType  string   `json:"leave_type,omitempty"`
	Label      string   `json:"label,omitempty"`
	Detail     *string  `json:"detail,omitempty"`
	Minutes    int      `json:"minutes,omitempty"`
	Manual     bool     `json:"manual,omitempty"`
	ManualNote *string  `json:"manual_note,omitempty"`
}

// StatusKind is the coarse day-level kind derived from both sides.
type StatusKind string

const (
	KindPending    StatusKind = "PENDING"
	KindPresent    StatusKind = "PRESENT"
	KindLate       StatusKind = "LATE"
	KindEarlyLeave StatusKind = "EARLY_LEAVE"
	KindMissingIn  StatusKind = "MISSING_IN"
	KindMissingOut StatusKind = "MISSING_OUT"
	KindOnLeave    StatusKind = "ON_LEAVE"
	KindOnDuty     StatusKind = "ON_DUTY"
	KindAbsent     StatusKind = "ABSENT"
	KindOff        StatusKind = "OFF"
)

// DayStatus is the reconciled view of one subject on one civil date.
// It is recomputed on every query and never persisted. LeaveType is the
// day-level override (in-side first), empty when none applies.
type DayStatus struct {
	Date          string     `json:"date"`
	DayType       string     `json:"day_type,omitempty"`
	Kind          StatusKind `json:"kind"`
	LeaveType     string     `json:"leave_type,omitempty"`
	InStatus      SideStatus `json:"in_status"`
	OutStatus     SideStatus `json:"out_status"`
	LateMinutes   *int       `json:"late_minutes,omitempty"`
	EarlyMinutes  *int       `json:"early_minutes,omitempty"`
	HasDuty       bool       `json:"has_duty"`
	DutyLabel     *string    `json:"duty_label,omitempty"`
	IsManual      bool       `json:"is_manual"`
	ManualNote    *string    `json:"manual_note,omitempty"`
	LeaveConflict bool       `json:"leave_conflict,omitempty"`
}

// RangeSummary holds the range-level counters. Counters are not mutually
// exclusive: a late day also counts as present.
type RangeSummary struct {
	TotalWorkingDays int `json:"total_working_days"`
	Present          int `json:"present"`
	Late             int `json:"late"`
	EarlyOut         int `json:"early_out"`
	AbsentNoRecord   int `json:"absent_no_record"`
	MissingIn        int `json:"missing_in"`
	MissingOut       int `json:"missing_out"`
	DinasLuar        int `json:"dinas_luar"`
	WFA              int `json:"wfa"`
	WFH              int `json:"wfh"`
	Ijin             int `json:"ijin"`
	Sakit            int `json:"sakit"`
	Cuti             int `json:"cuti"`
}
