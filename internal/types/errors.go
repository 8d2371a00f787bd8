package types

import "errors"

// Error kinds the pipeline reports. Each failing asset surfaces exactly one
// of these, wrapped around the underlying cause; match with errors.Is.
var (
	// ErrUnreadableContainer means the header or sample stream cannot be
	// decoded at all. The asset is left untouched.
	ErrUnreadableContainer = errors.New("unreadable container")

	// ErrUnsupportedEncoding means the declared (sample format, bit depth)
	// combination is outside the supported set. The asset is left untouched.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")

	// ErrWriteFailure means creating, writing, or finalizing the reduced
	// output failed. No partial output survives it.
	ErrWriteFailure = errors.New("write failure")

	// ErrPathFailure means a path carries no usable file name. Reported
	// before any I/O happens.
	ErrPathFailure = errors.New("path failure")
)
