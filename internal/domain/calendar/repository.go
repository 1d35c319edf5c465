package calendar

import (
	"context"
	"time"
)

// CalendarRepository reads generated calendar days. Generation itself is an
// administrative job owned elsewhere.
type CalendarRepository interface {
	// ListByRange returns at most one day per date in [start, end], ordered by date.
	ListByRange(ctx context.Context, orgUnitID string, start, end time.Time) ([]CalendarDay, error)
}
