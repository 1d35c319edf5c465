package reconciliation

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
)

// ResolveLeave picks the approved grant in force on a civil date. When several
// approved grants overlap it takes the earliest StartDate, then the lowest ID,
// and reports the ambiguity.
func ResolveLeave(grants []leave.LeaveGrant, date time.Time) (*leave.LeaveGrant, bool) {
	var candidates []leave.LeaveGrant
	for _, g := range grants {
		if g.IsApproved() && g.LeaveType.IsOverride() && g.Covers(date) {
			candidates = append(candidates, g)
		}
	}

	if len(candidates) == 0 {
		return nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := dateutil.Civil(candidates[i].StartDate), dateutil.Civil(candidates[j].StartDate)
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return candidates[i].ID < candidates[j].ID
	})

	chosen := candidates[0]
	return &chosen, len(candidates) > 1
}
