package orgunit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/ttlcache"
)

// Resolver maps a subject to its org unit and the zone its days are observed
// in. Lookups are cached per subject.
type Resolver struct {
	orgunit.OrgUnitRepository
	cache           *ttlcache.Cache[string, orgunit.OrgUnit]
	defaultTimezone *time.Location
	logger          *slog.Logger
}

func NewResolver(repo orgunit.OrgUnitRepository, cache *ttlcache.Cache[string, orgunit.OrgUnit], defaultTimezone *time.Location, logger *slog.Logger) *Resolver {
	if cache == nil {
		cache = ttlcache.New[string, orgunit.OrgUnit](10 * time.Minute)
	}
	if defaultTimezone == nil {
		defaultTimezone = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		OrgUnitRepository: repo,
		cache:             cache,
		defaultTimezone:   defaultTimezone,
		logger:            logger,
	}
}

// Resolve returns the org unit of subjectID and its zone. An empty or unknown
// zone falls back to the default.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (orgunit.OrgUnit, *time.Location, error) {
	if unit, ok := r.cache.Get(subjectID); ok {
		return unit, dateutil.LoadLocation(unit.Timezone, r.defaultTimezone), nil
	}

	unit, err := r.OrgUnitRepository.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, orgunit.ErrSubjectNotFound) {
			return orgunit.OrgUnit{}, nil, err
		}
		return orgunit.OrgUnit{}, nil, fmt.Errorf("failed to resolve org unit of subject: %w", err)
	}

	if unit.Timezone != "" {
		if _, err := time.LoadLocation(unit.Timezone); err != nil {
			r.logger.Warn("org unit has an unknown timezone, using default",
				slog.String("org_unit_id", unit.ID),
				slog.String("timezone", unit.Timezone),
			)
		}
	}

	r.cache.Set(subjectID, unit)
	return unit, dateutil.LoadLocation(unit.Timezone, r.defaultTimezone), nil
}

// Authorize resolves subjectID on behalf of the caller. Employees may only read
// themselves and admins only their own org unit. A subject the caller may not
// read is reported as unauthorized whether or not it exists.
func (r *Resolver) Authorize(ctx context.Context, claims jwt.Claims, subjectID string) (orgunit.OrgUnit, *time.Location, error) {
	self := subjectID == claims.SubjectID
	if !self && !claims.IsAdmin() {
		return orgunit.OrgUnit{}, nil, orgunit.ErrUnauthorizedAccess
	}

	unit, loc, err := r.Resolve(ctx, subjectID)
	if err != nil {
		if !self && errors.Is(err, orgunit.ErrSubjectNotFound) {
			return orgunit.OrgUnit{}, nil, orgunit.ErrUnauthorizedAccess
		}
		return orgunit.OrgUnit{}, nil, err
	}

	if unit.ID != claims.OrgUnitID {
		return orgunit.OrgUnit{}, nil, orgunit.ErrUnauthorizedAccess
	}

	return unit, loc, nil
}
