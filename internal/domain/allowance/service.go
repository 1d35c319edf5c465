package allowance

import "context"

type AllowanceService interface {
	// MyBreakdown classifies the caller's stored daily credits.
	MyBreakdown(ctx context.Context, req BreakdownRequest) (BreakdownResponse, error)

	// EvaluateBreakdown classifies caller-supplied days.
	EvaluateBreakdown(ctx context.Context, req EvaluateBreakdownRequest) (BreakdownResponse, error)
}
