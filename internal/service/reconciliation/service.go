package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/duty"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/ttlcache"
	orgunitService "github.com/cmlabs-hris/hris-reconciliation-go/internal/service/orgunit"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// DefaultTimezone is used when an org unit has no zone configured.
	DefaultTimezone *time.Location
	// OrgUnits caches subject → org unit (and its zone).
	OrgUnits *ttlcache.Cache[string, orgunit.OrgUnit]
	Logger   *slog.Logger
	Now      func() time.Time
}

type ReconciliationServiceImpl struct {
	calendar.CalendarRepository
	attendance.AttendanceRecordRepository
	leave.LeaveGrantRepository
	duty.DutyAssignmentRepository
	orgUnits *orgunitService.Resolver
	config   Config
}

func NewReconciliationService(
	calendarRepo calendar.CalendarRepository,
	recordRepo attendance.AttendanceRecordRepository,
	leaveRepo leave.LeaveGrantRepository,
	dutyRepo duty.DutyAssignmentRepository,
	orgUnitRepo orgunit.OrgUnitRepository,
	cfg Config,
) reconciliation.ReconciliationService {
	if cfg.DefaultTimezone == nil {
		cfg.DefaultTimezone = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &ReconciliationServiceImpl{
		CalendarRepository:         calendarRepo,
		AttendanceRecordRepository: recordRepo,
		LeaveGrantRepository:       leaveRepo,
		DutyAssignmentRepository:   dutyRepo,
		orgUnits:                   orgunitService.NewResolver(orgUnitRepo, cfg.OrgUnits, cfg.DefaultTimezone, cfg.Logger),
		config:                     cfg,
	}
}

// Reconcile implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) Reconcile(ctx context.Context, req reconciliation.ReconcileRequest) (reconciliation.ReconcileResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.ReconcileResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return reconciliation.ReconcileResponse{}, err
	}

	unit, loc, err := s.orgUnits.Authorize(ctx, claims, req.SubjectID)
	if err != nil {
		return reconciliation.ReconcileResponse{}, err
	}

	start, _ := dateutil.ParseDate(req.StartDate)
	end, _ := dateutil.ParseDate(req.EndDate)
	today := dateutil.DateOf(s.config.Now(), loc)

	// Nothing after today is ever evaluated.
	fetchEnd := end
	if fetchEnd.After(today) {
		fetchEnd = today
	}

	var (
		days    []calendar.CalendarDay
		records []attendance.AttendanceRecord
		grants  []leave.LeaveGrant
		duties  []duty.DutyAssignment
	)

	if !start.After(fetchEnd) {
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			days, err = s.CalendarRepository.ListByRange(gctx, unit.ID, start, fetchEnd)
			if err != nil {
				return fmt.Errorf("failed to list calendar days: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			var err error
			records, err = s.AttendanceRecordRepository.ListBySubject(gctx, req.SubjectID, start, fetchEnd)
			if err != nil {
				return fmt.Errorf("failed to list attendance records: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			var err error
			grants, err = s.LeaveGrantRepository.ListApprovedByRange(gctx, req.SubjectID, unit.ID, start, fetchEnd)
			if err != nil {
				return fmt.Errorf("failed to list leave grants: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			var err error
			from, to := civilBounds(start, fetchEnd, loc)
			duties, err = s.DutyAssignmentRepository.ListOverlapping(gctx, req.SubjectID, from, to)
			if err != nil {
				return fmt.Errorf("failed to list duty assignments: %w", err)
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return reconciliation.ReconcileResponse{}, err
		}
	}

	result := Reconcile(Input{
		SubjectID: req.SubjectID,
		Start:     start,
		End:       end,
		Today:     today,
		ShowToday: req.ShowToday,
		Location:  loc,
		Calendar:  days,
		Records:   records,
		Leaves:    subjectGrants(grants, req.SubjectID),
		Duties:    duties,
		Logger:    s.config.Logger,
	})

	return reconciliation.ReconcileResponse{
		SubjectID: req.SubjectID,
		OrgUnitID: unit.ID,
		Timezone:  loc.String(),
		Today:     dateutil.DateKey(today),
		StartDate: dateutil.DateKey(start),
		EndDate:   dateutil.DateKey(end),
		Days:      result.Days,
		Summary:   result.Summary,
	}, nil
}

// Evaluate implements reconciliation.ReconciliationService.
func (s *ReconciliationServiceImpl) Evaluate(ctx context.Context, req reconciliation.EvaluateRequest) (reconciliation.ReconcileResponse, error) {
	if err := req.Validate(); err != nil {
		return reconciliation.ReconcileResponse{}, err
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return reconciliation.ReconcileResponse{}, fmt.Errorf("%w: %s", reconciliation.ErrInvalidTimezone, req.Timezone)
	}

	start, _ := dateutil.ParseDate(req.StartDate)
	end, _ := dateutil.ParseDate(req.EndDate)
	today, _ := dateutil.ParseDate(req.Today)

	in := Input{
		SubjectID: req.SubjectID,
		Start:     start,
		End:       end,
		Today:     today,
		ShowToday: req.ShowToday,
		Location:  loc,
		Logger:    s.config.Logger,
	}
	for _, c := range req.Calendar {
		in.Calendar = append(in.Calendar, c.ToEntity())
	}
	for _, r := range req.Records {
		in.Records = append(in.Records, r.ToEntity(req.SubjectID))
	}
	for _, l := range req.Leaves {
		in.Leaves = append(in.Leaves, l.ToEntity(req.SubjectID))
	}
	for _, d := range req.Duties {
		in.Duties = append(in.Duties, d.ToEntity(req.SubjectID))
	}

	result := Reconcile(in)

	return reconciliation.ReconcileResponse{
		SubjectID: req.SubjectID,
		Timezone:  loc.String(),
		Today:     dateutil.DateKey(today),
		StartDate: dateutil.DateKey(start),
		EndDate:   dateutil.DateKey(end),
		Days:      result.Days,
		Summary:   result.Summary,
	}, nil
}

// civilBounds converts an inclusive civil range to the instants [from, to)
// that bound it in loc.
func civilBounds(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, loc)
	return from, to
}

// subjectGrants keeps the approved grants that belong to the subject.
func subjectGrants(grants []leave.LeaveGrant, subjectID string) []leave.LeaveGrant {
	kept := grants[:0:0]
	for _, g := range grants {
		if g.SubjectID == subjectID && g.IsApproved() {
			kept = append(kept, g)
		}
	}
	return kept
}
