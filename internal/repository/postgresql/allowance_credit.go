package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/allowance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type allowanceRepository struct {
	db *database.DB
}

// ListDailyCredits implements allowance.AllowanceRepository.
func (a *allowanceRepository) ListDailyCredits(ctx context.Context, subjectID string, start, end time.Time) ([]allowance.AnnotatedDay, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT subject_id, date, check_in_at, leave_type, is_duty_schedule, note,
			   late_minutes, earned_credit::text, expected_unit::text
		FROM allowance_daily_credits
		WHERE subject_id = $1
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, subjectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily credits: %w", err)
	}
	defer rows.Close()

	var days []allowance.AnnotatedDay
	for rows.Next() {
		var day allowance.AnnotatedDay
		var earned, expected string
		if err := rows.Scan(
			&day.SubjectID, &day.Date, &day.CheckInAt, &day.LeaveType, &day.IsDutySchedule, &day.Note,
			&day.LateMinutes, &earned, &expected,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily credit: %w", err)
		}

		if day.EarnedCredit, err = decimal.NewFromString(earned); err != nil {
			return nil, fmt.Errorf("invalid earned_credit %q: %w", earned, err)
		}
		if day.ExpectedUnit, err = decimal.NewFromString(expected); err != nil {
			return nil, fmt.Errorf("invalid expected_unit %q: %w", expected, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily credits: %w", err)
	}

	return days, nil
}

func NewAllowanceRepository(db *database.DB) allowance.AllowanceRepository {
	return &allowanceRepository{db: db}
}
