package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveGrantRepository struct {
	db *database.DB
}

const leaveGrantColumns = `
	id, subject_id, org_unit_id, leave_type, start_date, end_date, status,
	reason, decision_note, decided_by, decided_at, created_at, updated_at
`

func scanLeaveGrant(row pgx.Row) (leave.LeaveGrant, error) {
	var g leave.LeaveGrant
	var leaveType, status string
	err := row.Scan(
		&g.ID, &g.SubjectID, &g.OrgUnitID, &leaveType, &g.StartDate, &g.EndDate, &status,
		&g.Reason, &g.DecisionNote, &g.DecidedBy, &g.DecidedAt, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveGrant{}, err
	}
	if lt := attendance.ParseLeaveType(leaveType); lt != nil {
		g.LeaveType = *lt
	}
	g.Status = leave.GrantStatus(status)
	return g, nil
}

// ListApprovedByRange implements leave.LeaveGrantRepository.
func (l *leaveGrantRepository) ListApprovedByRange(ctx context.Context, subjectID, orgUnitID string, start, end time.Time) ([]leave.LeaveGrant, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveGrantColumns + `
		FROM leave_grants
		WHERE subject_id = $1
		  AND org_unit_id = $2
		  AND status = $3
		  AND start_date <= $5::date
		  AND end_date >= $4::date
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, subjectID, orgUnitID, string(leave.GrantStatusApproved), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave grants: %w", err)
	}
	defer rows.Close()

	var grants []leave.LeaveGrant
	for rows.Next() {
		g, err := scanLeaveGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave grants: %w", err)
	}

	return grants, nil
}

// GetByIDForUpdate implements leave.LeaveGrantRepository.
func (l *leaveGrantRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveGrant, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveGrantColumns + `
		FROM leave_grants
		WHERE id = $1
		FOR UPDATE
	`

	g, err := scanLeaveGrant(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveGrant{}, leave.ErrLeaveGrantNotFound
		}
		return leave.LeaveGrant{}, fmt.Errorf("failed to get leave grant: %w", err)
	}

	return g, nil
}

// UpdateStatus implements leave.LeaveGrantRepository.
func (l *leaveGrantRepository) UpdateStatus(ctx context.Context, id string, status leave.GrantStatus, decidedBy string, note *string, decidedAt time.Time) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_grants
		SET status = $2,
			decided_by = $3,
			decision_note = $4,
			decided_at = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, string(status), decidedBy, note, decidedAt)
	if err != nil {
		return fmt.Errorf("failed to update leave grant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveGrantNotFound
	}

	return nil
}

// CountByStatus implements leave.LeaveGrantRepository.
func (l *leaveGrantRepository) CountByStatus(ctx context.Context, orgUnitID string, status leave.GrantStatus) (int64, error) {
	q := GetQuerier(ctx, l.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM leave_grants
		WHERE org_unit_id = $1 AND status = $2
	`, orgUnitID, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave grants: %w", err)
	}

	return count, nil
}

func NewLeaveGrantRepository(db *database.DB) leave.LeaveGrantRepository {
	return &leaveGrantRepository{db: db}
}
