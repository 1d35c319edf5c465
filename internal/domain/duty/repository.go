package duty

import (
	"context"
	"time"
)

type DutyAssignmentRepository interface {
	// ListOverlapping returns the subject's assignments whose [start_at, end_at)
	// intersects [from, to).
	ListOverlapping(ctx context.Context, subjectID string, from, to time.Time) ([]DutyAssignment, error)
}
