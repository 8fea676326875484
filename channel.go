package gripcontrol

import "strings"

// Channel is a named subscription topic. PrevID, when set, is the ID of the
// last item the client saw, letting the proxy detect gaps.
type Channel struct {
	Name   string `json:"name"`
	PrevID string `json:"prev-id,omitempty"`
}

// CreateGripChannelHeader returns the value of a Grip-Channel header for
// channels, e.g. "chan1; prev-id=x, chan2".
func CreateGripChannelHeader(channels []Channel) string {
	parts := make([]string, 0, len(channels))
	for _, channel := range channels {
		part := channel.Name
		if channel.PrevID != "" {
			part += "; prev-id=" + channel.PrevID
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
