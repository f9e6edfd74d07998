package restaurant

import "errors"

var (
	// ErrNotFound signals that the restaurant could not be located.
	ErrNotFound = errors.New("restaurant not found")
	// ErrInvalidHours signals malformed opening-hours windows.
	ErrInvalidHours = errors.New("invalid opening hours")
)
