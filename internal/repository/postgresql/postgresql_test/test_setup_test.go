package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds the connection used by repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	require.NoError(t, postgresql.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables empties every table
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"allowance_daily_credits",
		"duty_assignments",
		"leave_grants",
		"attendance_records",
		"calendar_days",
		"subjects",
		"org_units",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

// seedSubject creates an org unit and one subject in it.
func (t *TestDatabaseSetup) seedSubject(tb testing.TB, ctx context.Context, timezone string) (orgUnitID, subjectID string) {
	tb.Helper()

	err := t.DB.QueryRow(ctx, `
		INSERT INTO org_units (name, timezone) VALUES ($1, $2) RETURNING id
	`, "Satker Uji", timezone).Scan(&orgUnitID)
	require.NoError(tb, err)

	err = t.DB.QueryRow(ctx, `
		INSERT INTO subjects (org_unit_id, full_name) VALUES ($1, $2) RETURNING id
	`, orgUnitID, "Pegawai Uji").Scan(&subjectID)
	require.NoError(tb, err)

	return orgUnitID, subjectID
}
