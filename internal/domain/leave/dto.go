package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
)

type DecideRequest struct {
	ID      string  `json:"-"`
	Approve bool    `json:"-"`
	Note    *string `json:"note,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	// Rejections must say why.
	if !r.Approve && (r.Note == nil || validator.IsEmpty(*r.Note)) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required when rejecting",
		})
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveGrantResponse struct {
	ID           string  `json:"id"`
	SubjectID    string  `json:"subject_id"`
	OrgUnitID    string  `json:"org_unit_id"`
	LeaveType    string  `json:"leave_type"`
	LeaveLabel   string  `json:"leave_label"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason,omitempty"`
	DecisionNote *string `json:"decision_note,omitempty"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

func NewLeaveGrantResponse(g LeaveGrant) LeaveGrantResponse {
	resp := LeaveGrantResponse{
		ID:           g.ID,
		SubjectID:    g.SubjectID,
		OrgUnitID:    g.OrgUnitID,
		LeaveType:    string(g.LeaveType),
		LeaveLabel:   g.LeaveType.Label(),
		StartDate:    dateutil.DateKey(g.StartDate),
		EndDate:      dateutil.DateKey(g.EndDate),
		Status:       string(g.Status),
		Reason:       g.Reason,
		DecisionNote: g.DecisionNote,
		DecidedBy:    g.DecidedBy,
	}
	if g.DecidedAt != nil {
		decidedAt := g.DecidedAt.UTC().Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

type PendingBadgeResponse struct {
	OrgUnitID string `json:"org_unit_id"`
	Pending   int64  `json:"pending"`
	Cached    bool   `json:"cached"`
}

// DecidedEvent is the payload of the leave.decided event.
type DecidedEvent struct {
	GrantID   string `json:"grant_id"`
	SubjectID string `json:"subject_id"`
	OrgUnitID string `json:"org_unit_id"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

const EventLeaveDecided = "leave.decided"

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
