package script

import "errors"

var (
	// ErrRunnerClosed is returned when running a script on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrCallLimit is returned when a script makes more module calls than
	// the runner allows.
	ErrCallLimit = errors.New("script call limit exceeded")
)
