package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrUnsupportedExtension indicates a file whose extension is not a
	// recognized archive type
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrDepthExceeded indicates the nested-archive recursion limit was hit
	ErrDepthExceeded = errors.New("max extraction depth exceeded")

	// ErrNotFound indicates the source file does not exist
	ErrNotFound = errors.New("file not found")
)

// Extraction operation names used in ExtractError.Op
const (
	OpDispatch   = "dispatch"
	OpMkdir      = "mkdir"
	OpOpen       = "open"
	OpDecompress = "decompress"
	OpWrite      = "write"
	OpDelete     = "delete"
	OpWalk       = "walk"
)

// ExtractError represents a failure while extracting an archive. It carries
// the failing operation, the archive path and the underlying cause so
// callers can decide programmatically instead of parsing log lines.
type ExtractError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewExtractError creates a new ExtractError
func NewExtractError(op, path string, err error) *ExtractError {
	return &ExtractError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
