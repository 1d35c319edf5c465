package orgunit

import "context"

type OrgUnitRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (OrgUnit, error)
}
