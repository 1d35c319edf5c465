package orgunit

import "errors"

var (
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to subject")
)
