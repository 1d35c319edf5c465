package reconciliation

import "errors"

var ErrInvalidTimezone = errors.New("invalid timezone")
