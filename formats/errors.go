package formats

import "errors"

// ErrContentRequired is returned when an HTTP stream format is created
// without content and is not a close action.
var ErrContentRequired = errors.New("formats: content must be set")
