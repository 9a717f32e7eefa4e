package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrConflict         = fmt.Errorf("duplicate record")
	ErrInvalidOperation = fmt.Errorf("operation not allowed")
	ErrNotFound         = fmt.Errorf("record not found")

	// Lookup and provider errors
	ErrProvider           = fmt.Errorf("provider request failed")
	ErrResolution         = fmt.Errorf("no audio source available")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
