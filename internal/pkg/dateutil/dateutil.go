package dateutil

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	MinutesPerDay  = 24 * 60
)

// Date returns the civil date y-m-d as midnight UTC. All civil dates in this
// module are carried this way so they compare and format without a zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the civil date of instant t as observed in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// Civil normalizes an already-civil date (whatever its carrier zone) to midnight UTC.
func Civil(d time.Time) time.Time {
	return Date(d.Year(), d.Month(), d.Day())
}

func DateKey(d time.Time) string {
	return d.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DaysBetween enumerates every civil date in [start, end]. It returns nil when end is before start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = Civil(start), Civil(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into minutes after midnight.
// Seconds are accepted but truncated.
func ParseTimeOfDay(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return 0, false
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return 0, false
		}
		values[i] = v
	}
	return values[0]*60 + values[1], true
}

// MinutesFrom returns the whole minutes elapsed from the civil midnight of date
// to instant, both read in loc. Instants on a later civil day count past 1440.
func MinutesFrom(date time.Time, instant time.Time, loc *time.Location) int {
	local := instant.In(loc)
	dayOffset := int(DateOf(instant, loc).Sub(Civil(date)).Hours() / 24)
	return dayOffset*MinutesPerDay + local.Hour()*60 + local.Minute()
}

// ParseInstant accepts RFC3339 (with or without fractional seconds) and
// "2006-01-02 15:04:05" read as UTC. It returns nil for anything else.
func ParseInstant(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, DateTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// LoadLocation resolves an IANA zone name, falling back when the name is empty or unknown.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
