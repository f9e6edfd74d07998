package gallery

import "errors"

var (
	// ErrIssuance indicates the signed-URL batch call failed; no uploads
	// were attempted and nothing was persisted.
	ErrIssuance = errors.New("could not authorize uploads")
	// ErrIssuanceMismatch indicates the issued batch length does not match
	// the staged upload batch; committing against a mismatched mapping
	// would pair files with the wrong keys.
	ErrIssuanceMismatch = errors.New("issued upload URLs do not match staged files")
	// ErrUpload indicates at least one upload failed; the commit stops
	// before any metadata write.
	ErrUpload = errors.New("could not upload images")
	// ErrPersist indicates the final metadata patch failed after uploads
	// completed; the staged list is kept so the save can be retried.
	ErrPersist = errors.New("could not save images")
)
