package pubcontrol

import (
	"fmt"
)

// Format is a single representation of a published message, such as
// formats.HTTPStream or formats.WebSocketMessage.
type Format interface {
	// Name is the key the export is published under, e.g. "ws-message".
	Name() string
	// Export returns the JSON-ready representation of the format.
	Export() map[string]any
}

// Item is a message to publish: one or more formats plus optional ID and
// previous ID used by proxies to detect gaps.
type Item struct {
	Formats []Format
	ID      string
	PrevID  string
}

// NewItem returns an item with the given formats.
func NewItem(formats ...Format) *Item {
	return &Item{Formats: formats}
}

// Export returns {"formats": {name: export}, "id"?, "prev-id"?}.
func (item *Item) Export() (map[string]any, error) {
	formats := make(map[string]any, len(item.Formats))
	for _, f := range item.Formats {
		if _, exists := formats[f.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFormat, f.Name())
		}
		formats[f.Name()] = f.Export()
	}
	out := map[string]any{"formats": formats}
	if item.ID != "" {
		out["id"] = item.ID
	}
	if item.PrevID != "" {
		out["prev-id"] = item.PrevID
	}
	return out, nil
}
