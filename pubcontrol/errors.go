package pubcontrol

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateFormat is returned when an item holds two formats with the
	// same name.
	ErrDuplicateFormat = errors.New("pubcontrol: duplicate format name")

	// ErrNoChannels is returned when publishing to an empty channel list.
	ErrNoChannels = errors.New("pubcontrol: no channels given")

	// ErrNoItem is returned when publishing a nil item.
	ErrNoItem = errors.New("pubcontrol: no item given")

	// ErrNoURI is returned when a client has no endpoint configured.
	ErrNoURI = errors.New("pubcontrol: client has no uri")
)

// PublishError is returned when an item could not be delivered to an
// endpoint. Err is the final error seen; for HTTP status failures it is an
// httpbackoff.BadHttpResponseCode.
type PublishError struct {
	URI      string
	Attempts int
	Err      error
}

func (err *PublishError) Error() string {
	return fmt.Sprintf("publish to %s failed after %d attempt(s): %v", err.URI, err.Attempts, err.Err)
}

func (err *PublishError) Unwrap() error {
	return err.Err
}
