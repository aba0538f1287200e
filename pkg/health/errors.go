package health

import "errors"

var (
	// ErrCheckFailed wraps the names of failed checks in Report.Err.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is recorded for a check still running at the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckMissing is recorded for a named check with a nil CheckFunc.
	ErrCheckMissing = errors.New("health: check not configured")
)
