package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaveType_Label(t *testing.T) {
	cases := []struct {
		input LeaveType
		want  string
	}{
		{LeaveTypeDinasLuar, "Dinas Luar"},
		{LeaveTypeSakit, "Sakit"},
		{LeaveTypeWFA, "WFA"},
		{LeaveTypeCuti, "Cuti"},
		{LeaveType("TUGAS_BELAJAR"), "Tugas Belajar"},
		{LeaveType("DIKLAT"), "Diklat"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.input.Label(), "label of %s", c.input)
	}
}

func TestLeaveType_BreakdownLabel(t *testing.T) {
	assert.Equal(t, "DINAS LUAR", LeaveTypeDinasLuar.BreakdownLabel())
	assert.Equal(t, "SAKIT", LeaveTypeSakit.BreakdownLabel())
	assert.Equal(t, "TUGAS BELAJAR", LeaveType("TUGAS_BELAJAR").BreakdownLabel())
	assert.Equal(t, "DINAS LUAR", LeaveType("dinas_luar").BreakdownLabel())
}

func TestLeaveType_IsOverride(t *testing.T) {
	assert.False(t, LeaveTypeNormal.IsOverride())
	assert.False(t, LeaveType("").IsOverride())
	assert.True(t, LeaveTypeWFH.IsOverride())
	assert.False(t, IsOverridePtr(nil))
	assert.True(t, IsOverridePtr(ParseLeaveType(" sakit ")))
	assert.Nil(t, ParseLeaveType("  "))
	assert.Equal(t, LeaveTypeDinasLuar, *ParseLeaveType("dinas_luar"))
}

func TestAttendanceRecord_NilSafe(t *testing.T) {
	var r *AttendanceRecord
	assert.False(t, r.HasCheckIn())
	assert.False(t, r.HasCheckOut())
}
