package duty

import "time"

// DutyAssignment is a scheduled special assignment (guard shift, standby) over
// the half-open instant range [StartAt, EndAt). It may span midnight and may
// overlap other assignments of the same subject.
type DutyAssignment struct {
	ID           string
	SubjectID    string
	OrgUnitID    string
	StartAt      time.Time
	EndAt        time.Time
	Title        *string
	ScheduleType string
	Note         *string
}
