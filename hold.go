package gripcontrol

import (
	"encoding/json"

	"github.com/fanout/go-gripcontrol/formats"
)

// HoldMode selects how a proxy holds a connection.
type HoldMode string

const (
	// HoldModeResponse holds the request until one response is published
	// (long-polling).
	HoldModeResponse HoldMode = "response"
	// HoldModeStream keeps the response open and appends published content
	// (HTTP streaming).
	HoldModeStream HoldMode = "stream"
)

// HoldConfig describes a hold instruction. Response, when not nil, is sent to
// the client immediately (stream) or on timeout (response). A Timeout of zero
// or less leaves the timeout to the proxy.
type HoldConfig struct {
	Mode     HoldMode
	Channels []Channel
	Response *formats.HTTPResponse
	Timeout  int
}

// HoldInstruction is the JSON document a proxy expects in an
// application/grip-instruct response body.
type HoldInstruction struct {
	Hold     Hold `json:"hold"`
	Response any  `json:"response,omitempty"`
}

// Hold is the "hold" member of a HoldInstruction.
type Hold struct {
	Mode     HoldMode  `json:"mode"`
	Channels []Channel `json:"channels"`
	Timeout  int       `json:"timeout,omitempty"`
}

// NewHoldInstruction builds the instruction described by config.
func NewHoldInstruction(config HoldConfig) *HoldInstruction {
	instruction := &HoldInstruction{
		Hold: Hold{
			Mode:     config.Mode,
			Channels: append([]Channel{}, config.Channels...),
		},
	}
	if config.Timeout > 0 {
		instruction.Hold.Timeout = config.Timeout
	}
	if config.Response != nil {
		instruction.Response = config.Response.Export()
	}
	return instruction
}

// CreateHold returns the JSON encoding of the instruction described by
// config.
func CreateHold(config HoldConfig) (string, error) {
	data, err := json.Marshal(NewHoldInstruction(config))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateHoldResponse returns a long-polling hold instruction.
func CreateHoldResponse(channels []Channel, response *formats.HTTPResponse, timeout int) (string, error) {
	return CreateHold(HoldConfig{
		Mode:     HoldModeResponse,
		Channels: channels,
		Response: response,
		Timeout:  timeout,
	})
}

// CreateHoldStream returns a streaming hold instruction.
func CreateHoldStream(channels []Channel, response *formats.HTTPResponse) (string, error) {
	return CreateHold(HoldConfig{
		Mode:     HoldModeStream,
		Channels: channels,
		Response: response,
	})
}
