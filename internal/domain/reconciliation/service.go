package reconciliation

import "context"

type ReconciliationService interface {
	// Reconcile fetches the four fact streams of one subject and classifies the range.
	Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResponse, error)

	// Evaluate classifies caller-supplied fact streams without touching storage.
	Evaluate(ctx context.Context, req EvaluateRequest) (ReconcileResponse, error)
}
