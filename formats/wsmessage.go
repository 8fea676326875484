package formats

import "encoding/base64"

// WebSocketMessage is used to publish data to WebSocket clients connected to
// a GRIP proxy. Binary content, when set, takes precedence over text.
type WebSocketMessage struct {
	Content       string
	BinaryContent []byte
}

// NewWebSocketMessage returns a text message.
func NewWebSocketMessage(content string) *WebSocketMessage {
	return &WebSocketMessage{Content: content}
}

// NewWebSocketBinaryMessage returns a binary message.
func NewWebSocketBinaryMessage(content []byte) *WebSocketMessage {
	return &WebSocketMessage{BinaryContent: content}
}

// Name is the name used when publishing this format.
func (m *WebSocketMessage) Name() string {
	return "ws-message"
}

// Export returns {content | content-bin}.
func (m *WebSocketMessage) Export() map[string]any {
	if m.BinaryContent != nil {
		return map[string]any{"content-bin": base64.StdEncoding.EncodeToString(m.BinaryContent)}
	}
	return map[string]any{"content": m.Content}
}
