package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Database errors
	ErrHistoryDisabled = fmt.Errorf("edit history disabled")
	ErrEditNotFound    = fmt.Errorf("edit not found")

	// Editing errors
	ErrNoFiles    = fmt.Errorf("no files loaded")
	ErrEditFailed = fmt.Errorf("one or more edits failed")
	ErrSaveFailed = fmt.Errorf("one or more files could not be saved")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
