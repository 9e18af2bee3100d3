package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedTimestamp is returned when a timestamp field does not parse.
	ErrUnresolvedTimestamp = errors.New("unresolved timestamp")
	// ErrWriteFailure is returned when the rendered document cannot be written out.
	ErrWriteFailure = errors.New("write failure")
)

// Error aborts the rendering of one post.
type Error struct {
	PostID int64
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("render post %d: %v", e.PostID, e.Err)
	}
	return fmt.Sprintf("render post %d: %s: %v", e.PostID, e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
