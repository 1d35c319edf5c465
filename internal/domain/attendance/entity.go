package attendance

import (
	"time"
)

// AttendanceRecord is the single check-in/check-out record of one subject on
// one civil date. Each side carries its own optional leave override.
type AttendanceRecord struct {
	ID        string
	SubjectID string
	Date      time.Time

	CheckInAt  *time.Time
	CheckOutAt *time.Time

	CheckInLeaveType   *LeaveType
	CheckOutLeaveType  *LeaveType
	CheckInLeaveNotes  *string
	CheckOutLeaveNotes *string

	CheckInGeofenceName  *string
	CheckOutGeofenceName *string
	CheckInDistanceM     *float64
	CheckOutDistanceM    *float64

	IsManual   bool
	ManualNote *string
}

// HasCheckIn reports whether the in-side was recorded.
func (r *AttendanceRecord) HasCheckIn() bool {
	return r != nil && r.CheckInAt != nil
}

// HasCheckOut reports whether the out-side was recorded.
func (r *AttendanceRecord) HasCheckOut() bool {
	return r != nil && r.CheckOutAt != nil
}
