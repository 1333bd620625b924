// Package remote exposes a notebook over WebSocket so other processes can
// drive it and watch its signals.
//
// # Protocol
//
// Clients send JSON commands:
//
//	{"type":"select","tab":"main_tab_1","id":"7"}
//	{"type":"append","text":"Notes","data":"<p>hello</p>","selected":true}
//	{"type":"prepend","text":"Intro","data":{"tag":"h1","text":"Intro"}}
//	{"type":"label","tab":"main_tab_0","text":"Overview"}
//	{"type":"remove"}                     // removes the current tab
//	{"type":"state"}
//
// On connect the server sends a "hello" frame with a session id and build
// information, then a "state" frame. Every command that changes the
// notebook is answered to all clients with one "signal" frame per signal, in
// emission order, followed by a "state" frame:
//
//	{"type":"signal","signal":"unselect","tab":"main_tab_0","label":"One","ref":"7"}
//	{"type":"signal","signal":"select","tab":"main_tab_1","label":"Two","ref":"7"}
//	{"type":"signal","signal":"current_tab_change","tab":"main_tab_1","label":"Two","ref":"7"}
//	{"type":"state","state":{"id":"main","tabs":[...]},"ref":"7"}
//
// Malformed commands and unknown tab ids produce an "error" frame for the
// sender only. "state" commands are answered to the sender only.
//
// # Server
//
//	srv := remote.New(&remote.Config{Port: 8765, Advertise: true}, nb)
//	if err := srv.Start(); err != nil { // blocks until SIGINT/SIGTERM
//	    return err
//	}
//
// Plain HTTP routes "/state" (JSON snapshot) and "/healthz" are served next
// to the WebSocket endpoint.
//
// # Concurrency
//
// Session serialises notebook access. Each connection has a buffered send
// queue drained by its own writer goroutine; connections that fall too far
// behind are dropped. Pings keep idle connections alive.
package remote
