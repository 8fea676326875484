package origin

import "errors"

var (
	// ErrBadSignature is reported when a request lacks a valid Grip-Sig.
	ErrBadSignature = errors.New("origin: missing or invalid Grip-Sig")

	// ErrNoPublisher is reported by /publish/ when no proxy is configured.
	ErrNoPublisher = errors.New("origin: no publisher configured")
)
