package calendar

import "time"

type DayType string

const (
	DayTypeWorkday DayType = "WORKDAY"
	DayTypeHalfDay DayType = "HALF_DAY"
	DayTypeHoliday DayType = "HOLIDAY"
)

// IsWorking reports whether the day type counts as a working day.
func (t DayType) IsWorking() bool {
	return t == DayTypeWorkday || t == DayTypeHalfDay
}

// CalendarDay is the generated work pattern of one org unit on one civil date.
// ExpectedStart/ExpectedEnd are "HH:MM[:SS]" strings as stored upstream.
type CalendarDay struct {
	OrgUnitID     string
	Date          time.Time
	DayType       DayType
	ExpectedStart *string
	ExpectedEnd   *string
	Note          *string
}
