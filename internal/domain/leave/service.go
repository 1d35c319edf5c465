package leave

import (
	"context"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/sse"
)

type LeaveService interface {
	// Decide moves a SUBMITTED grant to APPROVED or REJECTED and publishes leave.decided.
	Decide(ctx context.Context, req DecideRequest) (LeaveGrantResponse, error)

	// PendingBadge returns the number of SUBMITTED grants awaiting the caller's org unit.
	PendingBadge(ctx context.Context) (PendingBadgeResponse, error)

	// Subscribe streams the events of one org unit until cleanup is called.
	Subscribe(ctx context.Context, orgUnitID string) (<-chan sse.Event, func())

	// Lifecycle
	Stop()
}
