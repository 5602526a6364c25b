package services

import "errors"

var (
	// ErrNoRoute is returned by the simulated backend when no registered
	// pattern matches the address. It indicates a setup defect, not a runtime
	// condition, so orchestration code lets it surface instead of converting
	// it into a failure event.
	ErrNoRoute = errors.New("no matching route")
)
