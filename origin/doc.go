// Package origin implements a small GRIP origin server, suitable for running
// behind Pushpin. It serves streaming and long-polling holds, a
// WebSocket-over-HTTP echo endpoint, and a publish endpoint that forwards
// messages to the proxy.
//
// Routes:
//
//	GET  /stream/{channel}   hold an HTTP stream open on channel
//	GET  /poll/{channel}     long-poll channel (?prev-id=, ?timeout=)
//	POST /ws                 WebSocket-over-HTTP echo, subscribed to ?channel=
//	POST /publish/{channel}  publish the request body to channel
package origin
