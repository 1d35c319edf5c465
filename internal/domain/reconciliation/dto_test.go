package reconciliation

import (
	"testing"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRequest_Validate_IndexedFields(t *testing.T) {
	req := EvaluateRequest{
		SubjectID: "8f14e45f-ceea-467f-a0e6-1b2c3d4e5f60",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-11",
		Today:     "2025-03-12",
		Timezone:  "Asia/Jakarta",
		Calendar: []CalendarDayInput{
			{Date: "2025-03-10", DayType: "WORKDAY"},
			{Date: "2025-03-11", DayType: "workday"},
		},
		Records: []AttendanceRecordInput{{Date: "11-03-2025"}},
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "calendar[1].day_type")
	assert.Contains(t, fields, "records[0].date")
}

func TestReconcileRequest_Validate_RangeTooLong(t *testing.T) {
	req := ReconcileRequest{
		SubjectID: "8f14e45f-ceea-467f-a0e6-1b2c3d4e5f60",
		StartDate: "2024-01-01",
		EndDate:   "2025-03-01",
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date range must not exceed 366 days", verrs.ToMap()["end_date"])
}
