/*
Package gripcontrol helps origin servers speak GRIP, the control protocol
used by reverse proxies such as Pushpin to hold HTTP connections open and to
carry WebSocket traffic over plain HTTP.

It builds the instructions an origin hands to a proxy:

  - hold instructions for long-polling and streaming, via CreateHold
  - the Grip-Channel header, via CreateGripChannelHeader
  - WebSocket control messages (subscribe, unsubscribe, detach), via
    WebSocketControlMessage

It parses GRIP URIs into proxy control endpoints (ParseGripURI), checks the
Grip-Sig token a proxy attaches to forwarded requests (ValidateSig), and
publishes to held connections through GripPubControl.

The WebSocket-over-HTTP framing lives in the wsevent package, publish formats
in formats, and the transport in pubcontrol.
*/
package gripcontrol
