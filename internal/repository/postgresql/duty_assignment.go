package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/duty"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
)

type dutyAssignmentRepository struct {
	db *database.DB
}

// ListOverlapping implements duty.DutyAssignmentRepository.
func (d *dutyAssignmentRepository) ListOverlapping(ctx context.Context, subjectID string, from, to time.Time) ([]duty.DutyAssignment, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT id, subject_id, org_unit_id, start_at, end_at, title, schedule_type, note
		FROM duty_assignments
		WHERE subject_id = $1
		  AND start_at < $3
		  AND end_at > $2
		ORDER BY start_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, subjectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query duty assignments: %w", err)
	}
	defer rows.Close()

	var duties []duty.DutyAssignment
	for rows.Next() {
		var a duty.DutyAssignment
		if err := rows.Scan(
			&a.ID, &a.SubjectID, &a.OrgUnitID, &a.StartAt, &a.EndAt, &a.Title, &a.ScheduleType, &a.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan duty assignment: %w", err)
		}
		duties = append(duties, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate duty assignments: %w", err)
	}

	return duties, nil
}

func NewDutyAssignmentRepository(db *database.DB) duty.DutyAssignmentRepository {
	return &dutyAssignmentRepository{db: db}
}
