package wscontext

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/fanout/go-gripcontrol"
	"github.com/fanout/go-gripcontrol/wsevent"
	"github.com/gorilla/websocket"
	"github.com/iancoleman/strcase"
)

// ContentType is the media type of WebSocket-over-HTTP bodies.
const ContentType = "application/websocket-events"

const (
	metaPrefix    = "Meta-"
	setMetaPrefix = "Set-Meta-"

	messagePrefix = "m:"
	controlPrefix = "c:"
)

// Context is the state of one WebSocket-over-HTTP request: the events the
// proxy delivered and the events queued for the response. It is not safe for
// concurrent use.
type Context struct {
	// ID is the proxy-assigned connection ID.
	ID string

	meta     map[string]string
	origMeta map[string]string
	in       []wsevent.Event
	read     int

	accepted      bool
	closed        bool
	peerCloseCode int
	out           []wsevent.Event
	subscriptions mapset.Set
}

// New returns a Context for connection id that received events.
func New(id string, meta map[string]string, events []wsevent.Event) *Context {
	c := &Context{
		ID:            id,
		meta:          map[string]string{},
		origMeta:      map[string]string{},
		in:            events,
		peerCloseCode: -1,
		subscriptions: mapset.NewSet(),
	}
	for k, v := range meta {
		c.meta[metaKey(k)] = v
		c.origMeta[metaKey(k)] = v
	}
	return c
}

// FromRequest decodes a WebSocket-over-HTTP request from a GRIP proxy.
func FromRequest(r *http.Request) (*Context, error) {
	id := r.Header.Get("Connection-Id")
	if id == "" {
		return nil, ErrNoConnectionID
	}
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != ContentType {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedContentType, contentType)
		}
	}

	meta := map[string]string{}
	for name, values := range r.Header {
		if strings.HasPrefix(name, metaPrefix) && len(values) > 0 {
			meta[strings.TrimPrefix(name, metaPrefix)] = values[0]
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading websocket events: %w", err)
	}
	events, err := wsevent.Decode(body)
	if err != nil {
		return nil, err
	}
	return New(id, meta, events), nil
}

// metaKey normalises a meta name, so that "User-Id", "user_id" and "UserId"
// all refer to "user-id".
func metaKey(name string) string {
	return strcase.ToKebab(name)
}

// IsOpening reports whether the request starts a new connection.
func (c *Context) IsOpening() bool {
	return len(c.in) > 0 && c.in[0].Type() == wsevent.TypeOpen
}

// Accept accepts an opening connection.
func (c *Context) Accept() {
	c.accepted = true
}

// Close queues a close frame with the given status code.
func (c *Context) Close(code int) {
	c.out = append(c.out, wsevent.NewCloseEvent(code))
	c.closed = true
}

// Closed reports whether Close was called.
func (c *Context) Closed() bool {
	return c.closed
}

// PeerCloseCode returns the status code of the close frame received from the
// client, or -1 if none was received.
func (c *Context) PeerCloseCode() int {
	return c.peerCloseCode
}

func isMessageEvent(e wsevent.Event) bool {
	switch e.Type() {
	case wsevent.TypeText, wsevent.TypeBinary, wsevent.TypeClose, wsevent.TypeDisconnect:
		return true
	}
	return false
}

// CanRecv reports whether Recv has anything left to return.
func (c *Context) CanRecv() bool {
	for _, e := range c.in[c.read:] {
		if isMessageEvent(e) {
			return true
		}
	}
	return false
}

// Recv returns the next message as websocket.TextMessage or
// websocket.BinaryMessage. A close frame from the client is returned as a
// *websocket.CloseError and an abrupt disconnect as ErrDisconnected.
func (c *Context) Recv() (int, []byte, error) {
	for c.read < len(c.in) {
		e := c.in[c.read]
		c.read++
		payload, _ := e.Payload()
		switch e.Type() {
		case wsevent.TypeText:
			return websocket.TextMessage, payload, nil
		case wsevent.TypeBinary:
			return websocket.BinaryMessage, payload, nil
		case wsevent.TypeClose:
			code, _ := e.CloseCode()
			c.peerCloseCode = code
			return 0, nil, &websocket.CloseError{Code: code}
		case wsevent.TypeDisconnect:
			return 0, nil, ErrDisconnected
		}
	}
	return 0, nil, ErrNoMessage
}

// Send queues a text message.
func (c *Context) Send(message string) {
	c.out = append(c.out, wsevent.NewTextEvent(wsevent.TypeText, messagePrefix+message))
}

// SendBinary queues a binary message.
func (c *Context) SendBinary(message []byte) {
	c.out = append(c.out, wsevent.NewPayloadEvent(wsevent.TypeBinary, append([]byte(messagePrefix), message...)))
}

// SendControl queues a control message for the proxy, as built by
// gripcontrol.WebSocketControlMessage.
func (c *Context) SendControl(message string) {
	c.out = append(c.out, wsevent.NewTextEvent(wsevent.TypeText, controlPrefix+message))
}

func (c *Context) sendControl(messageType string, args map[string]interface{}) error {
	message, err := gripcontrol.WebSocketControlMessage(messageType, args)
	if err != nil {
		return err
	}
	c.SendControl(message)
	return nil
}

// Subscribe subscribes the connection to channel. Subscribing twice within
// one request queues a single control message.
func (c *Context) Subscribe(channel string) error {
	if !c.subscriptions.Add(channel) {
		return nil
	}
	return c.sendControl(gripcontrol.ControlSubscribe, map[string]interface{}{"channel": channel})
}

// Unsubscribe unsubscribes the connection from channel.
func (c *Context) Unsubscribe(channel string) error {
	c.subscriptions.Remove(channel)
	return c.sendControl(gripcontrol.ControlUnsubscribe, map[string]interface{}{"channel": channel})
}

// Subscriptions returns the channels subscribed to during this request,
// sorted.
func (c *Context) Subscriptions() []string {
	channels := make([]string, 0, c.subscriptions.Cardinality())
	for channel := range c.subscriptions.Iter() {
		channels = append(channels, channel.(string))
	}
	sort.Strings(channels)
	return channels
}

// Detach tells the proxy to drop its connection to the origin while keeping
// the client connected.
func (c *Context) Detach() error {
	return c.sendControl(gripcontrol.ControlDetach, nil)
}

// Meta returns the value of a connection meta field.
func (c *Context) Meta(key string) (string, bool) {
	value, ok := c.meta[metaKey(key)]
	return value, ok
}

// SetMeta sets a connection meta field; the proxy attaches it to later
// requests for this connection. An empty value removes the field.
func (c *Context) SetMeta(key, value string) {
	c.meta[metaKey(key)] = value
}

// Events returns the events to send back to the proxy, starting with the
// OPEN acknowledgement when an opening connection was accepted.
func (c *Context) Events() []wsevent.Event {
	events := make([]wsevent.Event, 0, len(c.out)+1)
	if c.IsOpening() && c.accepted {
		events = append(events, wsevent.NewEvent(wsevent.TypeOpen))
	}
	return append(events, c.out...)
}

// changedMeta returns the meta fields that differ from those received.
func (c *Context) changedMeta() map[string]string {
	changed := map[string]string{}
	for k, v := range c.meta {
		if orig, ok := c.origMeta[k]; !ok || orig != v {
			changed[k] = v
		}
	}
	return changed
}

// WriteResponse writes the queued events, and any changed meta fields, as
// the response to the proxy.
func (c *Context) WriteResponse(w http.ResponseWriter) error {
	header := w.Header()
	header.Set("Content-Type", ContentType)
	if c.IsOpening() && c.accepted {
		header.Set("Sec-WebSocket-Extensions", "grip")
	}
	for k, v := range c.changedMeta() {
		header.Set(setMetaPrefix+http.CanonicalHeaderKey(k), v)
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(wsevent.Encode(c.Events()))
	return err
}
