// Package wscontext lets an origin server handle WebSocket-over-HTTP
// requests forwarded by a GRIP proxy.
//
// Each request carries a Connection-Id header, the connection's Meta-*
// headers and a body of framed events (see wsevent). A handler builds a
// Context from the request, reads incoming messages, queues outgoing
// messages and control instructions, and writes them all back in one
// response:
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//		ws, err := wscontext.FromRequest(r)
//		if err != nil {
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		if ws.IsOpening() {
//			ws.Accept()
//			ws.Subscribe("room")
//		}
//		for ws.CanRecv() {
//			_, msg, err := ws.Recv()
//			if err != nil {
//				ws.Close(websocket.CloseNormalClosure)
//				break
//			}
//			ws.Send(string(msg))
//		}
//		ws.WriteResponse(w)
//	}
package wscontext
