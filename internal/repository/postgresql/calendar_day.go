package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

// ListByRange implements calendar.CalendarRepository.
func (c *calendarRepository) ListByRange(ctx context.Context, orgUnitID string, start, end time.Time) ([]calendar.CalendarDay, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT org_unit_id, date, day_type,
			   to_char(expected_start, 'HH24:MI:SS'),
			   to_char(expected_end, 'HH24:MI:SS'),
			   note
		FROM calendar_days
		WHERE org_unit_id = $1
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, orgUnitID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar days: %w", err)
	}
	defer rows.Close()

	var days []calendar.CalendarDay
	for rows.Next() {
		var day calendar.CalendarDay
		var dayType string
		if err := rows.Scan(
			&day.OrgUnitID, &day.Date, &dayType,
			&day.ExpectedStart, &day.ExpectedEnd,
			&day.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar day: %w", err)
		}
		day.DayType = calendar.DayType(dayType)
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar days: %w", err)
	}

	return days, nil
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepository{db: db}
}
