package gripcontrol

import (
	"encoding/json"

	"github.com/peterbourgon/mergemap"
)

// WebSocket control message types understood by GRIP proxies.
const (
	ControlSubscribe   = "subscribe"
	ControlUnsubscribe = "unsubscribe"
	ControlDetach      = "detach"
	ControlKeepAlive   = "keep-alive"
)

// WebSocketControlMessage returns the JSON control message of the given type
// with args merged in, e.g. {"type":"subscribe","channel":"room"}. args is
// not modified and its "type" entry, if any, is overridden.
func WebSocketControlMessage(messageType string, args map[string]interface{}) (string, error) {
	message := mergemap.Merge(map[string]interface{}{}, args)
	message["type"] = messageType
	data, err := json.Marshal(message)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
