// Package formats provides the GRIP publish formats: HTTP response and HTTP
// stream content for long-polling and streaming clients, and WebSocket
// messages. Each format exports itself into the JSON shape a GRIP proxy
// expects.
package formats

import (
	"encoding/base64"

	"github.com/fanout/go-gripcontrol/text"
)

// exportBody sets key to the body text when body is valid UTF-8, and
// key+"-bin" to its base64 encoding otherwise.
func exportBody(export map[string]any, key string, body []byte) {
	if text.IsUTF8(body) {
		export[key] = string(body)
		return
	}
	export[key+"-bin"] = base64.StdEncoding.EncodeToString(body)
}
