package gripcontrol

import (
	"context"

	"github.com/fanout/go-gripcontrol/formats"
	"github.com/fanout/go-gripcontrol/pubcontrol"
)

// PublishOptions carries the optional item IDs used by proxies to order
// published items and detect gaps.
type PublishOptions struct {
	ID     string
	PrevID string
}

// GripPubControl publishes GRIP formats to every configured proxy.
type GripPubControl struct {
	*pubcontrol.PubControl
}

// NewGripPubControl returns a GripPubControl publishing to each config.
func NewGripPubControl(configs ...*GripConfig) *GripPubControl {
	gpc := &GripPubControl{PubControl: pubcontrol.New()}
	gpc.ApplyGripConfig(configs...)
	return gpc
}

// ApplyGripConfig adds a publish client per config, authenticated with a JWT
// when both ControlIss and Key are set.
func (gpc *GripPubControl) ApplyGripConfig(configs ...*GripConfig) {
	for _, config := range configs {
		clientConfig := pubcontrol.ClientConfig{URI: config.ControlURI}
		if config.ControlIss != "" {
			clientConfig.Iss = config.ControlIss
			clientConfig.Key = config.Key
		}
		gpc.ApplyConfig(clientConfig)
	}
}

func newItem(format pubcontrol.Format, opts PublishOptions) *pubcontrol.Item {
	item := pubcontrol.NewItem(format)
	item.ID = opts.ID
	item.PrevID = opts.PrevID
	return item
}

// Publish publishes a single format to channels and waits for every proxy.
func (gpc *GripPubControl) Publish(ctx context.Context, channels []string, format pubcontrol.Format, opts PublishOptions) error {
	return gpc.PubControl.Publish(ctx, channels, newItem(format, opts))
}

// PublishAsync publishes a single format in the background; see
// pubcontrol.PubControl.PublishAsync.
func (gpc *GripPubControl) PublishAsync(ctx context.Context, channels []string, format pubcontrol.Format, opts PublishOptions, callback func(error)) {
	gpc.PubControl.PublishAsync(ctx, channels, newItem(format, opts), callback)
}

// PublishHTTPResponse publishes a response to long-polling clients.
func (gpc *GripPubControl) PublishHTTPResponse(ctx context.Context, channels []string, response *formats.HTTPResponse, opts PublishOptions) error {
	return gpc.Publish(ctx, channels, response, opts)
}

func (gpc *GripPubControl) PublishHTTPResponseAsync(ctx context.Context, channels []string, response *formats.HTTPResponse, opts PublishOptions, callback func(error)) {
	gpc.PublishAsync(ctx, channels, response, opts, callback)
}

// PublishHTTPStream publishes content to streaming clients.
func (gpc *GripPubControl) PublishHTTPStream(ctx context.Context, channels []string, stream *formats.HTTPStream, opts PublishOptions) error {
	return gpc.Publish(ctx, channels, stream, opts)
}

func (gpc *GripPubControl) PublishHTTPStreamAsync(ctx context.Context, channels []string, stream *formats.HTTPStream, opts PublishOptions, callback func(error)) {
	gpc.PublishAsync(ctx, channels, stream, opts, callback)
}
