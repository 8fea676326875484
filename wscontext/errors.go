package wscontext

import "errors"

var (
	// ErrNoConnectionID is returned by FromRequest when the request has no
	// Connection-Id header.
	ErrNoConnectionID = errors.New("wscontext: missing Connection-Id header")

	// ErrUnexpectedContentType is returned by FromRequest for bodies that are
	// not application/websocket-events.
	ErrUnexpectedContentType = errors.New("wscontext: unexpected content type")

	// ErrNoMessage is returned by Recv when no messages are left.
	ErrNoMessage = errors.New("wscontext: no message to receive")

	// ErrDisconnected is returned by Recv when the client went away without
	// a close handshake.
	ErrDisconnected = errors.New("wscontext: client disconnected")
)
