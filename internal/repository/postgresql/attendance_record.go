package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
)

type attendanceRecordRepository struct {
	db *database.DB
}

// ListBySubject implements attendance.AttendanceRecordRepository.
func (a *attendanceRecordRepository) ListBySubject(ctx context.Context, subjectID string, start, end time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, subject_id, date,
			   check_in_at, check_out_at,
			   check_in_leave_type, check_out_leave_type,
			   check_in_leave_notes, check_out_leave_notes,
			   check_in_geofence_name, check_out_geofence_name,
			   check_in_distance_m, check_out_distance_m,
			   is_manual, manual_note
		FROM attendance_records
		WHERE subject_id = $1
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, subjectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		var inLeave, outLeave *string
		if err := rows.Scan(
			&rec.ID, &rec.SubjectID, &rec.Date,
			&rec.CheckInAt, &rec.CheckOutAt,
			&inLeave, &outLeave,
			&rec.CheckInLeaveNotes, &rec.CheckOutLeaveNotes,
			&rec.CheckInGeofenceName, &rec.CheckOutGeofenceName,
			&rec.CheckInDistanceM, &rec.CheckOutDistanceM,
			&rec.IsManual, &rec.ManualNote,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		if inLeave != nil {
			rec.CheckInLeaveType = attendance.ParseLeaveType(*inLeave)
		}
		if outLeave != nil {
			rec.CheckOutLeaveType = attendance.ParseLeaveType(*outLeave)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

func NewAttendanceRecordRepository(db *database.DB) attendance.AttendanceRecordRepository {
	return &attendanceRecordRepository{db: db}
}
