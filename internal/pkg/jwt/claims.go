package jwt

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

const (
	ClaimSubjectID = "subject_id"
	ClaimOrgUnitID = "org_unit_id"
	ClaimRole      = "role"
	ClaimType      = "type"

	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

var ErrMissingClaims = errors.New("token claims are missing or invalid")

// Claims is the caller identity carried by an access token.
type Claims struct {
	SubjectID string
	OrgUnitID string
	Role      Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// ClaimsFromContext reads the verified token placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	subjectID, ok := claims[ClaimSubjectID].(string)
	if !ok || subjectID == "" {
		return Claims{}, ErrMissingClaims
	}

	orgUnitID, ok := claims[ClaimOrgUnitID].(string)
	if !ok || orgUnitID == "" {
		return Claims{}, ErrMissingClaims
	}

	role, _ := claims[ClaimRole].(string)

	return Claims{
		SubjectID: subjectID,
		OrgUnitID: orgUnitID,
		Role:      Role(role),
	}, nil
}
