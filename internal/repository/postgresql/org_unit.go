package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type orgUnitRepository struct {
	db *database.DB
}

// GetBySubjectID implements orgunit.OrgUnitRepository.
func (o *orgUnitRepository) GetBySubjectID(ctx context.Context, subjectID string) (orgunit.OrgUnit, error) {
	q := GetQuerier(ctx, o.db)

	var unit orgunit.OrgUnit
	err := q.QueryRow(ctx, `
		SELECT ou.id, ou.name, COALESCE(ou.timezone, '')
		FROM subjects s
		JOIN org_units ou ON ou.id = s.org_unit_id
		WHERE s.id = $1
	`, subjectID).Scan(&unit.ID, &unit.Name, &unit.Timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orgunit.OrgUnit{}, orgunit.ErrSubjectNotFound
		}
		return orgunit.OrgUnit{}, fmt.Errorf("failed to get org unit by subject: %w", err)
	}

	return unit, nil
}

func NewOrgUnitRepository(db *database.DB) orgunit.OrgUnitRepository {
	return &orgUnitRepository{db: db}
}
