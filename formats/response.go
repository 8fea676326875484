package formats

// HTTPResponse is used to publish messages to HTTP long-polling clients, and
// to describe the immediate response in a hold instruction. Only the fields
// that are set are exported. A nil Body exports no body; an empty, non-nil
// Body exports an empty one.
type HTTPResponse struct {
	Code    int
	Reason  string
	Headers map[string]string
	Body    []byte
}

// NewHTTPResponse returns an HTTPResponse with the given body.
func NewHTTPResponse(body []byte) *HTTPResponse {
	return &HTTPResponse{Body: body}
}

// Name is the name used when publishing this format.
func (r *HTTPResponse) Name() string {
	return "http-response"
}

// Export returns {code?, reason?, headers?, body | body-bin}.
func (r *HTTPResponse) Export() map[string]any {
	export := map[string]any{}
	if r.Code != 0 {
		export["code"] = r.Code
	}
	if r.Reason != "" {
		export["reason"] = r.Reason
	}
	if r.Headers != nil {
		export["headers"] = r.Headers
	}
	if r.Body != nil {
		exportBody(export, "body", r.Body)
	}
	return export
}
