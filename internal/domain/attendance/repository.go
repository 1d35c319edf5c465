package attendance

import (
	"context"
	"time"
)

// AttendanceRecordRepository reads attendance records. There is at most one
// record per (subject, date).
type AttendanceRecordRepository interface {
	// ListBySubject returns the subject's records with date in [start, end], ordered by date.
	ListBySubject(ctx context.Context, subjectID string, start, end time.Time) ([]AttendanceRecord, error)
}
