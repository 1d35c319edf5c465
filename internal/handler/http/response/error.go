package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/orgunit"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/domain/reconciliation"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-reconciliation-go/internal/pkg/validator"
)

var (
	ErrInvalidToken           = errors.New("invalid token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Unauthorized")
	case errors.Is(err, ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Org unit errors
	case errors.Is(err, orgunit.ErrUnauthorizedAccess):
		Forbidden(w, "Not allowed to view this subject")
	case errors.Is(err, orgunit.ErrSubjectNotFound):
		NotFound(w, "Subject not found")

	// Reconciliation errors
	case errors.Is(err, reconciliation.ErrInvalidTimezone):
		ValidationError(w, map[string]string{"timezone": "timezone must be a valid IANA zone name"})

	// Leave errors
	case errors.Is(err, leave.ErrLeaveGrantNotFound):
		NotFound(w, "Leave grant not found")
	case errors.Is(err, leave.ErrLeaveGrantAlreadyProcessed):
		Conflict(w, "Leave grant already processed")
	case errors.Is(err, leave.ErrLeaveGrantOtherOrgUnit):
		Forbidden(w, "Leave grant belongs to another org unit")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
