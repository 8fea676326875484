package gripcontrol

import (
	"testing"

	"github.com/fanout/go-gripcontrol/internal/jsontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketControlMessage(t *testing.T) {
	message, err := WebSocketControlMessage("type", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"type"}`, message)

	args := map[string]interface{}{"arg1": "value1", "arg2": "value2"}
	message, err = WebSocketControlMessage("type", args)
	require.NoError(t, err)
	jsontest.AssertEqual(t, []byte(`{"arg2":"value2","arg1":"value1","type":"type"}`), []byte(message))
	assert.NotContains(t, args, "type", "args must not be modified")
}

func TestWebSocketControlMessageTypeWins(t *testing.T) {
	args := map[string]interface{}{"type": "other", "channel": "room"}
	message, err := WebSocketControlMessage(ControlSubscribe, args)
	require.NoError(t, err)
	jsontest.AssertEqual(t, []byte(`{"type":"subscribe","channel":"room"}`), []byte(message))
	assert.Equal(t, "other", args["type"])
}
