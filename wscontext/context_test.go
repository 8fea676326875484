package wscontext

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fanout/go-gripcontrol/wsevent"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(body string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/ws", strings.NewReader(body))
	r.Header.Set("Content-Type", ContentType)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestFromRequestRequiresConnectionID(t *testing.T) {
	_, err := FromRequest(newRequest("OPEN\r\n", nil))
	assert.Equal(t, ErrNoConnectionID, err)
}

func TestFromRequestRejectsContentType(t *testing.T) {
	r := newRequest("OPEN\r\n", map[string]string{"Connection-Id": "1", "Content-Type": "text/plain"})
	_, err := FromRequest(r)
	assert.True(t, errors.Is(err, ErrUnexpectedContentType))
}

func TestFromRequestBadFraming(t *testing.T) {
	_, err := FromRequest(newRequest("OPEN\r\nTEXT", map[string]string{"Connection-Id": "1"}))
	assert.True(t, errors.Is(err, wsevent.ErrTruncatedHeader))
}

func TestOpenAcceptSubscribe(t *testing.T) {
	ws, err := FromRequest(newRequest("OPEN\r\n", map[string]string{"Connection-Id": "conn-1"}))
	require.NoError(t, err)
	assert.Equal(t, "conn-1", ws.ID)
	assert.True(t, ws.IsOpening())
	assert.False(t, ws.CanRecv())

	ws.Accept()
	require.NoError(t, ws.Subscribe("room"))
	require.NoError(t, ws.Subscribe("room"))
	assert.Equal(t, []string{"room"}, ws.Subscriptions())

	rec := httptest.NewRecorder()
	require.NoError(t, ws.WriteResponse(rec))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "grip", rec.Header().Get("Sec-WebSocket-Extensions"))

	events, err := wsevent.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, wsevent.TypeOpen, events[0].Type())
	assert.False(t, events[0].HasPayload())
	text, ok := events[1].Text()
	require.True(t, ok)
	assert.Equal(t, `c:{"channel":"room","type":"subscribe"}`, text)
}

func TestNotAcceptedHasNoOpen(t *testing.T) {
	ws, err := FromRequest(newRequest("OPEN\r\n", map[string]string{"Connection-Id": "1"}))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, ws.WriteResponse(rec))
	assert.Empty(t, rec.Header().Get("Sec-WebSocket-Extensions"))
	assert.Empty(t, rec.Body.String())
}

func TestRecvAndSend(t *testing.T) {
	body := string(wsevent.Encode([]wsevent.Event{
		wsevent.NewTextEvent(wsevent.TypeText, "héllo"),
		wsevent.NewEvent(wsevent.TypePing),
		wsevent.NewPayloadEvent(wsevent.TypeBinary, []byte{0, 1, 2}),
		wsevent.NewCloseEvent(websocket.CloseGoingAway),
	}))
	ws, err := FromRequest(newRequest(body, map[string]string{"Connection-Id": "1"}))
	require.NoError(t, err)
	assert.False(t, ws.IsOpening())

	require.True(t, ws.CanRecv())
	messageType, data, err := ws.Recv()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.Equal(t, "héllo", string(data))
	ws.Send(string(data))

	messageType, data, err = ws.Recv()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, messageType)
	assert.Equal(t, []byte{0, 1, 2}, data)
	ws.SendBinary(data)

	_, _, err = ws.Recv()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.CloseGoingAway, closeErr.Code)
	assert.Equal(t, websocket.CloseGoingAway, ws.PeerCloseCode())
	ws.Close(websocket.CloseGoingAway)
	assert.True(t, ws.Closed())

	assert.False(t, ws.CanRecv())
	_, _, err = ws.Recv()
	assert.Equal(t, ErrNoMessage, err)

	out := wsevent.Encode(ws.Events())
	assert.Equal(t, "TEXT 8\r\nm:héllo\r\nBINARY 5\r\nm:\x00\x01\x02\r\nCLOSE 2\r\n\x03\xe9\r\n", string(out))
}

func TestRecvDisconnect(t *testing.T) {
	ws := New("1", nil, []wsevent.Event{wsevent.NewEvent(wsevent.TypeDisconnect)})
	require.True(t, ws.CanRecv())
	_, _, err := ws.Recv()
	assert.Equal(t, ErrDisconnected, err)
}

func TestUnsubscribeAndDetach(t *testing.T) {
	ws := New("1", nil, nil)
	require.NoError(t, ws.Subscribe("a"))
	require.NoError(t, ws.Unsubscribe("a"))
	require.NoError(t, ws.Detach())
	assert.Empty(t, ws.Subscriptions())

	var texts []string
	for _, e := range ws.Events() {
		text, _ := e.Text()
		texts = append(texts, text)
	}
	assert.Equal(t, []string{
		`c:{"channel":"a","type":"subscribe"}`,
		`c:{"channel":"a","type":"unsubscribe"}`,
		`c:{"type":"detach"}`,
	}, texts)
}

func TestMeta(t *testing.T) {
	r := newRequest("", map[string]string{
		"Connection-Id": "1",
		"Meta-User-Id":  "alice",
		"Meta-Room":     "lobby",
	})
	ws, err := FromRequest(r)
	require.NoError(t, err)

	userID, ok := ws.Meta("user_id")
	require.True(t, ok)
	assert.Equal(t, "alice", userID)

	ws.SetMeta("Room", "lobby")
	ws.SetMeta("nickname", "al")
	ws.SetMeta("user-id", "bob")

	rec := httptest.NewRecorder()
	require.NoError(t, ws.WriteResponse(rec))
	assert.Equal(t, "al", rec.Header().Get("Set-Meta-Nickname"))
	assert.Equal(t, "bob", rec.Header().Get("Set-Meta-User-Id"))
	assert.Empty(t, rec.Header().Values("Set-Meta-Room"), "unchanged meta is not echoed")
}
