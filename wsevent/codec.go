package wsevent

import (
	"bytes"
	"strconv"
)

var crlf = []byte("\r\n")

// Encode serializes events, in order, into a single WebSocket-over-HTTP body.
// It panics on an event whose type fails ValidateType, which only the zero
// Event can have.
func Encode(events []Event) []byte {
	size := 0
	for _, e := range events {
		mustValidType(e.typ)
		size += len(e.typ) + 2
		if e.hasPayload {
			size += 1 + 16 + len(e.payload) + 2
		}
	}
	buf := bytes.NewBuffer(make([]byte, 0, size))
	for _, e := range events {
		buf.WriteString(e.typ)
		if e.hasPayload {
			buf.WriteByte(' ')
			buf.WriteString(strconv.FormatUint(uint64(len(e.payload)), 16))
			buf.Write(crlf)
			buf.Write(e.payload)
		}
		buf.Write(crlf)
	}
	return buf.Bytes()
}

// Decode parses a WebSocket-over-HTTP body into events. An empty body yields
// no events. Decoding is all or nothing: on a malformed body a *FramingError
// is returned together with a nil slice.
//
// All offsets are byte offsets into data. Payloads are copied, so the
// returned events do not alias data.
func Decode(data []byte) ([]Event, error) {
	events := []Event{}
	pos := 0
	for pos < len(data) {
		start := pos
		at := bytes.Index(data[pos:], crlf)
		if at < 0 {
			return nil, framingError(ErrTruncatedHeader, start)
		}
		line := data[pos : pos+at]
		pos += at + 2

		sp := bytes.IndexByte(line, ' ')
		if sp < 0 {
			if len(line) == 0 {
				return nil, framingError(ErrEmptyType, start)
			}
			if bytes.ContainsAny(line, "\r\n") {
				return nil, framingError(ErrInvalidType, start)
			}
			events = append(events, Event{typ: string(line)})
			continue
		}
		if sp == 0 {
			return nil, framingError(ErrEmptyType, start)
		}
		if bytes.ContainsAny(line[:sp], "\r\n") {
			return nil, framingError(ErrInvalidType, start)
		}

		n, err := strconv.ParseUint(string(line[sp+1:]), 16, 64)
		if err != nil {
			return nil, framingError(ErrInvalidLength, start+sp+1)
		}
		if n > uint64(len(data)-pos) {
			return nil, framingError(ErrTruncatedPayload, pos)
		}
		end := pos + int(n)
		if !bytes.HasPrefix(data[end:], crlf) {
			return nil, framingError(ErrMissingPayloadTerminator, end)
		}
		payload := make([]byte, n)
		_ = copy(payload, data[pos:end])
		events = append(events, Event{typ: string(line[:sp]), payload: payload, hasPayload: true})
		pos = end + 2
	}
	return events, nil
}
