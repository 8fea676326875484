// Package pubcontrol publishes items to GRIP proxy publish endpoints (for
// example Pushpin's /publish/ API).
//
// A Client talks to a single endpoint, authenticating with a JWT bearer
// token or HTTP basic auth, and retries intermittent failures (network
// errors and HTTP 5xx responses) with exponential backoff. A PubControl fans
// an item out to every configured Client, either synchronously or in the
// background.
//
//	pc := pubcontrol.New(pubcontrol.ClientConfig{
//		URI: "http://localhost:5561",
//	})
//	item := pubcontrol.NewItem(formats.NewWebSocketMessage("hello"))
//	err := pc.Publish(ctx, []string{"room-1"}, item)
package pubcontrol
