package prefs

import "errors"

var (
	// ErrEmptyPath is returned when Open is called without a file path.
	ErrEmptyPath = errors.New("preferences file path is required")

	// ErrLoadFailed is returned when an existing preferences file cannot be read or parsed.
	ErrLoadFailed = errors.New("failed to load preferences")

	// ErrSaveFailed is returned when the preferences file cannot be written.
	ErrSaveFailed = errors.New("failed to save preferences")
)
