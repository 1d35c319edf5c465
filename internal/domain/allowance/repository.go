package allowance

import (
	"context"
	"time"
)

type AllowanceRepository interface {
	// ListDailyCredits returns the subject's annotated days in [start, end], ordered by date.
	ListDailyCredits(ctx context.Context, subjectID string, start, end time.Time) ([]AnnotatedDay, error)
}
