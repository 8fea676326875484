package formats

// HTTPStream is used to publish messages to HTTP streaming clients. It either
// carries content or tells the proxy to close the stream.
type HTTPStream struct {
	Content []byte
	Close   bool
}

// NewHTTPStream returns a stream format carrying content, which must not be
// empty.
func NewHTTPStream(content []byte) (*HTTPStream, error) {
	if len(content) == 0 {
		return nil, ErrContentRequired
	}
	return &HTTPStream{Content: content}, nil
}

// NewHTTPStreamClose returns a stream format that closes the stream.
func NewHTTPStreamClose() *HTTPStream {
	return &HTTPStream{Close: true}
}

// Name is the name used when publishing this format.
func (s *HTTPStream) Name() string {
	return "http-stream"
}

// Export returns {"action": "close"} for a close action and
// {content | content-bin} otherwise.
func (s *HTTPStream) Export() map[string]any {
	export := map[string]any{}
	if s.Close {
		export["action"] = "close"
		return export
	}
	exportBody(export, "content", s.Content)
	return export
}
