package leave

import "errors"

var (
	ErrNotFound      = errors.New("leave not found")
	ErrLeaveConflict = errors.New("leave overlaps an existing leave")
	ErrInvalidRange  = errors.New("end date before start date")
	ErrInvalidType   = errors.New("unknown leave type")
)
