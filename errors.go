package ucdchart

import "errors"

var (
	// ErrNoSource is returned by Open when no chunk source is configured.
	ErrNoSource = errors.New("ucdchart: no chunk source configured")

	// ErrClosed is returned by operations on a closed Database.
	ErrClosed = errors.New("ucdchart: database closed")
)
