package attendance

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LeaveType is the per-side override recorded on attendance and granted by
// leave requests. NORMAL means "no override, evaluate time rules".
type LeaveType string

const (
	LeaveTypeNormal    LeaveType = "NORMAL"
	LeaveTypeDinasLuar LeaveType = "DINAS_LUAR"
	LeaveTypeWFA       LeaveType = "WFA"
	LeaveTypeWFH       LeaveType = "WFH"
	LeaveTypeIjin      LeaveType = "IJIN"
	LeaveTypeSakit     LeaveType = "SAKIT"
	LeaveTypeCuti      LeaveType = "CUTI"
)

var leaveLabels = map[LeaveType]string{
	LeaveTypeNormal:    "Normal",
	LeaveTypeDinasLuar: "Dinas Luar",
	LeaveTypeWFA:       "WFA",
	LeaveTypeWFH:       "WFH",
	LeaveTypeIjin:      "Ijin",
	LeaveTypeSakit:     "Sakit",
	LeaveTypeCuti:      "Cuti",
}

var titleCaser = cases.Title(language.Indonesian)

// ParseLeaveType normalizes free-form input ("sakit", " Dinas_Luar ").
// Empty input yields nil.
func ParseLeaveType(s string) *LeaveType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	lt := LeaveType(s)
	return &lt
}

// IsOverride reports whether t replaces the time rules for its side.
func (t LeaveType) IsOverride() bool {
	return t != "" && t != LeaveTypeNormal
}

// Label is the human label of the type ("Dinas Luar", "Sakit"). Types
// without a fixed label get underscores replaced by spaces and title casing.
func (t LeaveType) Label() string {
	if label, ok := leaveLabels[t]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(string(t)), "_", " "))
}

// BreakdownLabel is the upper-case label used by the allowance breakdown.
func (t LeaveType) BreakdownLabel() string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(string(t)), "_", " "))
}

// IsOverridePtr is IsOverride for optional values.
func IsOverridePtr(t *LeaveType) bool {
	return t != nil && t.IsOverride()
}
