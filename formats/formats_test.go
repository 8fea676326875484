package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResponseExport(t *testing.T) {
	assert.Equal(t, "http-response", (&HTTPResponse{}).Name())
	assert.Equal(t, map[string]any{}, (&HTTPResponse{}).Export())
	assert.Equal(t, map[string]any{"body": "body"}, NewHTTPResponse([]byte("body")).Export())
	assert.Equal(t, map[string]any{"body": ""}, NewHTTPResponse([]byte{}).Export())

	r := &HTTPResponse{
		Code:    200,
		Reason:  "OK",
		Headers: map[string]string{"Content-Type": "text/plain"},
		Body:    []byte{0xff, 0x00, 0x01},
	}
	assert.Equal(t, map[string]any{
		"code":     200,
		"reason":   "OK",
		"headers":  map[string]string{"Content-Type": "text/plain"},
		"body-bin": "/wAB",
	}, r.Export())
}

func TestHTTPStreamExport(t *testing.T) {
	s, err := NewHTTPStream([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, "http-stream", s.Name())
	assert.Equal(t, map[string]any{"content": "hello\n"}, s.Export())

	s, err = NewHTTPStream([]byte{0xc3})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"content-bin": "ww=="}, s.Export())

	assert.Equal(t, map[string]any{"action": "close"}, NewHTTPStreamClose().Export())
}

func TestHTTPStreamRequiresContent(t *testing.T) {
	_, err := NewHTTPStream(nil)
	assert.Equal(t, ErrContentRequired, err)
	_, err = NewHTTPStream([]byte{})
	assert.Equal(t, ErrContentRequired, err)
}

func TestWebSocketMessageExport(t *testing.T) {
	m := NewWebSocketMessage("hi")
	assert.Equal(t, "ws-message", m.Name())
	assert.Equal(t, map[string]any{"content": "hi"}, m.Export())
	assert.Equal(t, map[string]any{"content-bin": "AAE="}, NewWebSocketBinaryMessage([]byte{0, 1}).Export())
}
