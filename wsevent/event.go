package wsevent

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/fanout/go-gripcontrol/text"
	"github.com/gorilla/websocket"
)

// Event types understood by GRIP proxies.
const (
	TypeOpen       = "OPEN"
	TypeText       = "TEXT"
	TypeBinary     = "BINARY"
	TypeClose      = "CLOSE"
	TypePing       = "PING"
	TypePong       = "PONG"
	TypeDisconnect = "DISCONNECT"
)

// Event is a single WebSocket-over-HTTP event: a type and an optional
// payload. An absent payload and a present but empty payload are different
// events and stay different through Encode and Decode.
//
// Events are immutable. Constructors copy the payload they are given and
// Payload returns a copy. The type of an event built by a constructor or by
// Decode always passes ValidateType; the zero Event does not.
type Event struct {
	typ        string
	payload    []byte
	hasPayload bool
}

// ValidateType checks that typ can be framed: it must be non-empty and hold
// no space, CR or LF. It returns ErrEmptyType or ErrInvalidType otherwise.
func ValidateType(typ string) error {
	if typ == "" {
		return ErrEmptyType
	}
	if strings.ContainsAny(typ, " \r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	return nil
}

func mustValidType(typ string) {
	if err := ValidateType(typ); err != nil {
		panic(err)
	}
}

// NewEvent returns an event of the given type with no payload. It panics if
// typ fails ValidateType; check untrusted types with ValidateType first.
func NewEvent(typ string) Event {
	mustValidType(typ)
	return Event{typ: typ}
}

// NewPayloadEvent returns an event of the given type carrying a copy of
// payload. A nil or empty payload yields a present, empty payload. It panics
// if typ fails ValidateType.
func NewPayloadEvent(typ string, payload []byte) Event {
	mustValidType(typ)
	b := make([]byte, len(payload))
	_ = copy(b, payload)
	return Event{typ: typ, payload: b, hasPayload: true}
}

// NewTextEvent returns an event whose payload is the UTF-8 bytes of s. It
// panics if typ fails ValidateType.
func NewTextEvent(typ, s string) Event {
	mustValidType(typ)
	return Event{typ: typ, payload: []byte(s), hasPayload: true}
}

// NewCloseEvent returns a CLOSE event whose payload is the two byte,
// big-endian close code, as in a WebSocket close frame.
func NewCloseEvent(code int) Event {
	return Event{typ: TypeClose, payload: websocket.FormatCloseMessage(code, ""), hasPayload: true}
}

// Type returns the event type, e.g. "TEXT".
func (e Event) Type() string {
	return e.typ
}

// HasPayload reports whether the event carries a payload, which may be empty.
func (e Event) HasPayload() bool {
	return e.hasPayload
}

// Payload returns a copy of the payload bytes, and false if the event has no
// payload.
func (e Event) Payload() ([]byte, bool) {
	if !e.hasPayload {
		return nil, false
	}
	b := make([]byte, len(e.payload))
	_ = copy(b, e.payload)
	return b, true
}

// Len returns the payload length in bytes, 0 when there is no payload.
func (e Event) Len() int {
	return len(e.payload)
}

// Text returns the payload decoded as text. The second return value is false
// when there is no payload or the payload is not valid UTF-8.
func (e Event) Text() (string, bool) {
	if !e.hasPayload || !text.IsUTF8(e.payload) {
		return "", false
	}
	return string(e.payload), true
}

// CloseCode returns the close code carried by a CLOSE event. A CLOSE event
// without a code reports websocket.CloseNoStatusReceived.
func (e Event) CloseCode() (int, bool) {
	if e.typ != TypeClose {
		return 0, false
	}
	if len(e.payload) < 2 {
		return websocket.CloseNoStatusReceived, true
	}
	return int(binary.BigEndian.Uint16(e.payload)), true
}

// Equal reports whether two events have the same type, the same payload
// presence and the same payload bytes.
func (e Event) Equal(o Event) bool {
	if e.typ != o.typ || e.hasPayload != o.hasPayload {
		return false
	}
	return string(e.payload) == string(o.payload)
}

func (e Event) String() string {
	if !e.hasPayload {
		return e.typ
	}
	if s, ok := e.Text(); ok {
		return e.typ + " " + s
	}
	return e.typ + " <binary>"
}
