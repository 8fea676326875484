// Package wsevent implements the WebSocket-over-HTTP event framing used by
// GRIP proxies such as Pushpin to carry WebSocket traffic in plain HTTP
// request and response bodies.
//
// A body is zero or more events back to back. An event without a payload is
//
//	TYPE\r\n
//
// and an event with a payload (possibly empty) is
//
//	TYPE <hex-byte-length>\r\n<payload>\r\n
//
// The length is the number of payload bytes, not characters. Payloads are
// opaque and may hold binary data or multi-byte UTF-8 text; the decoder works
// in byte offsets throughout and never interprets payload bytes.
package wsevent
