package remap

import (
	"errors"
	"fmt"
)

var (
	// ErrClassOutOfRange reports a class index that is negative or not
	// below the source vocabulary length.
	ErrClassOutOfRange = errors.New("class index out of range")
	// ErrMalformedLine reports an annotation whose first token is not an integer.
	ErrMalformedLine = errors.New("malformed annotation line")
	// ErrDuplicateTargetName reports a target vocabulary that repeats a name,
	// which would make the target index ambiguous.
	ErrDuplicateTargetName = errors.New("duplicate name in target vocabulary")
)

// LineError locates a data error inside a label file.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
