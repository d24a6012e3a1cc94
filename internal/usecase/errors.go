package usecase

import "errors"

var (
	// ErrInvalidInput covers unusable requests: unknown plan shape, duplicate
	// availability records, broken rules, or a refused apply.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for unknown games and missing stored plans.
	ErrNotFound = errors.New("resource not found")
	// ErrDependencyUnavailable marks a data source that could not be reached.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
