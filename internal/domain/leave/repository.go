package leave

import (
	"context"
	"time"
)

// LeaveGrantRepository - interface for leave_grants table
type LeaveGrantRepository interface {
	// ListApprovedByRange returns APPROVED grants of the subject in the org unit
	// that overlap [start, end].
	ListApprovedByRange(ctx context.Context, subjectID, orgUnitID string, start, end time.Time) ([]LeaveGrant, error)

	// GetByIDForUpdate locks the grant row; call it inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveGrant, error)

	UpdateStatus(ctx context.Context, id string, status GrantStatus, decidedBy string, note *string, decidedAt time.Time) error

	CountByStatus(ctx context.Context, orgUnitID string, status GrantStatus) (int64, error)
}
