package leave

import "errors"

var (
	ErrLeaveGrantNotFound         = errors.New("leave grant not found")
	ErrLeaveGrantAlreadyProcessed = errors.New("leave grant already processed")
	ErrLeaveGrantOtherOrgUnit     = errors.New("leave grant belongs to another org unit")
)
