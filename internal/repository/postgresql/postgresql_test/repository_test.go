package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrgUnitRepository_GetBySubjectID(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	orgUnitID, subjectID := setup.seedSubject(t, ctx, "Asia/Jakarta")
	repo := postgresql.NewOrgUnitRepository(setup.DB)

	unit, err := repo.GetBySubjectID(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, orgUnitID, unit.ID)
	assert.Equal(t, "Asia/Jakarta", unit.Timezone)

	_, err = repo.GetBySubjectID(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, orgunit.ErrSubjectNotFound)
}

func TestCalendarRepository_ListByRange(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	orgUnitID, _ := setup.seedSubject(t, ctx, "Asia/Jakarta")

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO calendar_days (org_unit_id, date, day_type, expected_start, expected_end, note) VALUES
			($1, '2025-03-10', 'WORKDAY', '08:00', '17:00', NULL),
			($1, '2025-03-11', 'HALF_DAY', '08:00', '12:30', NULL),
			($1, '2025-03-12', 'HOLIDAY', NULL, NULL, 'Nyepi'),
			($1, '2025-03-13', 'WORKDAY', '08:00', '17:00', NULL)
	`, orgUnitID)
	require.NoError(t, err)

	days, err := postgresql.NewCalendarRepository(setup.DB).ListByRange(ctx, orgUnitID, dateutil.Date(2025, 3, 10), dateutil.Date(2025, 3, 12))
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "2025-03-10", dateutil.DateKey(days[0].Date))
	require.NotNil(t, days[1].ExpectedEnd)
	assert.Equal(t, "12:30:00", *days[1].ExpectedEnd)
	assert.Equal(t, calendar.DayTypeHoliday, days[2].DayType)
	assert.Nil(t, days[2].ExpectedStart)
}

func TestAttendanceRecordRepository_ListBySubject(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	_, subjectID := setup.seedSubject(t, ctx, "Asia/Jakarta")

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO attendance_records (subject_id, date, check_in_at, check_out_at, check_out_leave_type, is_manual)
		VALUES ($1, '2025-03-10', '2025-03-10T01:15:00Z', '2025-03-10T10:00:00Z', 'sakit', TRUE)
	`, subjectID)
	require.NoError(t, err)

	records, err := postgresql.NewAttendanceRecordRepository(setup.DB).ListBySubject(ctx, subjectID, dateutil.Date(2025, 3, 1), dateutil.Date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.NotNil(t, rec.CheckInAt)
	assert.True(t, rec.CheckInAt.Equal(time.Date(2025, 3, 10, 1, 15, 0, 0, time.UTC)))
	require.NotNil(t, rec.CheckOutLeaveType)
	assert.Equal(t, attendance.LeaveTypeSakit, *rec.CheckOutLeaveType)
	assert.Nil(t, rec.CheckInLeaveType)
	assert.True(t, rec.IsManual)
}

func TestLeaveGrantRepository_DecideFlow(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	orgUnitID, subjectID := setup.seedSubject(t, ctx, "Asia/Jakarta")
	repo := postgresql.NewLeaveGrantRepository(setup.DB)

	var grantID string
	err := setup.DB.QueryRow(ctx, `
		INSERT INTO leave_grants (subject_id, org_unit_id, leave_type, start_date, end_date, status)
		VALUES ($1, $2, 'CUTI', '2025-03-10', '2025-03-12', 'SUBMITTED')
		RETURNING id
	`, subjectID, orgUnitID).Scan(&grantID)
	require.NoError(t, err)

	pending, err := repo.CountByStatus(ctx, orgUnitID, leave.GrantStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	err = postgresql.NewTxRunner(setup.DB).RunInTx(ctx, func(txCtx context.Context) error {
		g, err := repo.GetByIDForUpdate(txCtx, grantID)
		if err != nil {
			return err
		}
		return repo.UpdateStatus(txCtx, g.ID, leave.GrantStatusApproved, subjectID, nil, time.Now())
	})
	require.NoError(t, err)

	grants, err := repo.ListApprovedByRange(ctx, subjectID, orgUnitID, dateutil.Date(2025, 3, 12), dateutil.Date(2025, 3, 20))
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, attendance.LeaveTypeCuti, grants[0].LeaveType)
	assert.NotNil(t, grants[0].DecidedAt)

	none, err := repo.ListApprovedByRange(ctx, subjectID, orgUnitID, dateutil.Date(2025, 3, 13), dateutil.Date(2025, 3, 20))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.GetByIDForUpdate(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, leave.ErrLeaveGrantNotFound)
}

func TestDutyAssignmentRepository_ListOverlapping(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	orgUnitID, subjectID := setup.seedSubject(t, ctx, "Asia/Jakarta")

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO duty_assignments (subject_id, org_unit_id, start_at, end_at, title) VALUES
			($1, $2, '2025-03-09T15:00:00Z', '2025-03-09T17:00:00Z', 'Jaga Malam'),
			($1, $2, '2025-03-10T17:00:00Z', '2025-03-10T18:00:00Z', 'Setelah Rentang')
	`, subjectID, orgUnitID)
	require.NoError(t, err)

	// 2025-03-10 00:00 WIB .. 2025-03-11 00:00 WIB
	from := time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	duties, err := postgresql.NewDutyAssignmentRepository(setup.DB).ListOverlapping(ctx, subjectID, from, to)
	require.NoError(t, err)
	assert.Empty(t, duties)

	duties, err = postgresql.NewDutyAssignmentRepository(setup.DB).ListOverlapping(ctx, subjectID, from.Add(-time.Hour), to)
	require.NoError(t, err)
	require.Len(t, duties, 1)
	require.NotNil(t, duties[0].Title)
	assert.Equal(t, "Jaga Malam", *duties[0].Title)
}

func TestAllowanceRepository_ListDailyCredits(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	_, subjectID := setup.seedSubject(t, ctx, "Asia/Jakarta")

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO allowance_daily_credits (subject_id, date, note, earned_credit, expected_unit)
		VALUES ($1, '2025-03-10', 'WORKDAY', 0.5, 1)
	`, subjectID)
	require.NoError(t, err)

	days, err := postgresql.NewAllowanceRepository(setup.DB).ListDailyCredits(ctx, subjectID, dateutil.Date(2025, 3, 1), dateutil.Date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "0.5", days[0].EarnedCredit.String())
	assert.Equal(t, "1", days[0].ExpectedUnit.String())
}
