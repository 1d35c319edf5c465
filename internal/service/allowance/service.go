package allowance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/allowance"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/ttlcache"
	orgunitService "github.com/cmlabs-hris/hris-reconciliation-go/internal/service/orgunit"
)

type Config struct {
	DefaultTimezone *time.Location
	OrgUnits        *ttlcache.Cache[string, orgunit.OrgUnit]
	Logger          *slog.Logger
	Now             func() time.Time
}

type AllowanceServiceImpl struct {
	allowance.AllowanceRepository
	orgUnits *orgunitService.Resolver
	config   Config
}

func NewAllowanceService(allowanceRepo allowance.AllowanceRepository, orgUnitRepo orgunit.OrgUnitRepository, cfg Config) allowance.AllowanceService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &AllowanceServiceImpl{
		AllowanceRepository: allowanceRepo,
		orgUnits:            orgunitService.NewResolver(orgUnitRepo, cfg.OrgUnits, cfg.DefaultTimezone, cfg.Logger),
		config:              cfg,
	}
}

// MyBreakdown implements allowance.AllowanceService.
func (s *AllowanceServiceImpl) MyBreakdown(ctx context.Context, req allowance.BreakdownRequest) (allowance.BreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return allowance.BreakdownResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return allowance.BreakdownResponse{}, err
	}

	_, loc, err := s.orgUnits.Authorize(ctx, claims, req.SubjectID)
	if err != nil {
		return allowance.BreakdownResponse{}, err
	}

	today := dateutil.DateOf(s.config.Now(), loc)
	start, _ := dateutil.ParseDate(req.StartDate)
	end, _ := dateutil.ParseDate(req.EndDate)

	days, err := s.AllowanceRepository.ListDailyCredits(ctx, req.SubjectID, start, end)
	if err != nil {
		return allowance.BreakdownResponse{}, fmt.Errorf("failed to list daily credits: %w", err)
	}

	return allowance.BreakdownResponse{
		SubjectID: req.SubjectID,
		Today:     dateutil.DateKey(today),
		Breakdown: Breakdown(days, today),
	}, nil
}

// EvaluateBreakdown implements allowance.AllowanceService.
func (s *AllowanceServiceImpl) EvaluateBreakdown(ctx context.Context, req allowance.EvaluateBreakdownRequest) (allowance.BreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return allowance.BreakdownResponse{}, err
	}

	today, _ := dateutil.ParseDate(req.Today)

	days := make([]allowance.AnnotatedDay, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, d.ToEntity())
	}

	return allowance.BreakdownResponse{
		Today:     dateutil.DateKey(today),
		Breakdown: Breakdown(days, today),
	}, nil
}
