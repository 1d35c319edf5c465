package reconciliation

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/duty"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
)

// ProjectDuties maps every civil date touched by an assignment's half-open
// interval [StartAt, EndAt), taken in loc, to the assignments covering it.
// An instantaneous assignment lands on its start date; an inverted one is ignored.
// Each date's assignments are ordered by StartAt, then ID.
func ProjectDuties(duties []duty.DutyAssignment, loc *time.Location) map[string][]duty.DutyAssignment {
	if loc == nil {
		loc = time.UTC
	}

	projected := make(map[string][]duty.DutyAssignment)
	for _, d := range duties {
		if d.EndAt.Before(d.StartAt) {
			continue
		}

		first := dateutil.DateOf(d.StartAt, loc)
		last := first
		if d.EndAt.After(d.StartAt) {
			last = dateutil.DateOf(d.EndAt.Add(-time.Nanosecond), loc)
		}

		for _, day := range dateutil.DaysBetween(first, last) {
			key := dateutil.DateKey(day)
			projected[key] = append(projected[key], d)
		}
	}

	for _, set := range projected {
		sort.SliceStable(set, func(i, j int) bool {
			if !set[i].StartAt.Equal(set[j].StartAt) {
				return set[i].StartAt.Before(set[j].StartAt)
			}
			return set[i].ID < set[j].ID
		})
	}

	return projected
}

// DutyLabel joins the distinct non-empty titles of an ordered assignment set
// with ", ". It returns nil when no assignment carries a title.
func DutyLabel(set []duty.DutyAssignment) *string {
	seen := make(map[string]struct{}, len(set))
	titles := make([]string, 0, len(set))
	for _, d := range set {
		if d.Title == nil {
			continue
		}
		title := strings.TrimSpace(*d.Title)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}

	if len(titles) == 0 {
		return nil
	}
	label := strings.Join(titles, ", ")
	return &label
}
