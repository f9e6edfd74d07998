package media

import "errors"

var (
	// ErrEmptyBatch indicates a signed-URL request without any files.
	ErrEmptyBatch = errors.New("empty file batch")
	// ErrSignFailed wraps presigner failures without leaking store detail.
	ErrSignFailed = errors.New("failed to generate secure upload URL")
)
