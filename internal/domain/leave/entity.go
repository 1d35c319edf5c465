package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
)

type GrantStatus string

const (
	GrantStatusDraft     GrantStatus = "DRAFT"
	GrantStatusSubmitted GrantStatus = "SUBMITTED"
	GrantStatusApproved  GrantStatus = "APPROVED"
	GrantStatusRejected  GrantStatus = "REJECTED"
	GrantStatusCancelled GrantStatus = "CANCELLED"
)

// LeaveGrant is a leave request over a closed civil date range. Only APPROVED
// grants take part in reconciliation.
type LeaveGrant struct {
	ID           string
	SubjectID    string
	OrgUnitID    string
	LeaveType    attendance.LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Status       GrantStatus
	Reason       *string
	DecisionNote *string
	DecidedBy    *string
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Covers reports whether the civil date d falls inside [StartDate, EndDate].
// Dates compare by calendar day whatever zone carries them.
func (g LeaveGrant) Covers(d time.Time) bool {
	d = dateutil.Civil(d)
	return !d.Before(dateutil.Civil(g.StartDate)) && !d.After(dateutil.Civil(g.EndDate))
}

// IsApproved reports whether the grant takes part in reconciliation.
func (g LeaveGrant) IsApproved() bool {
	return g.Status == GrantStatusApproved
}
