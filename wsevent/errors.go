package wsevent

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedHeader is returned when no CRLF terminates a type line.
	ErrTruncatedHeader = errors.New("wsevent: truncated header")

	// ErrInvalidLength is returned when the declared payload length is not
	// a hexadecimal number.
	ErrInvalidLength = errors.New("wsevent: invalid payload length")

	// ErrTruncatedPayload is returned when fewer payload bytes remain than
	// the header declares.
	ErrTruncatedPayload = errors.New("wsevent: truncated payload")

	// ErrMissingPayloadTerminator is returned when a payload is not followed
	// by CRLF.
	ErrMissingPayloadTerminator = errors.New("wsevent: missing payload terminator")

	// ErrEmptyType is returned when a type line carries no event type.
	ErrEmptyType = errors.New("wsevent: empty event type")

	// ErrInvalidType is returned for an event type holding a space, CR or LF.
	ErrInvalidType = errors.New("wsevent: invalid event type")
)

// FramingError reports a malformed event stream. Err is one of the sentinel
// errors above and Offset is the byte offset of the element that failed to
// parse.
type FramingError struct {
	Err    error
	Offset int
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("%v at byte offset %d", e.Err, e.Offset)
}

func (e *FramingError) Unwrap() error {
	return e.Err
}

func framingError(err error, offset int) error {
	return &FramingError{Err: err, Offset: offset}
}
