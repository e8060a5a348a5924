// Package server hosts masked editing sessions over WebSocket.
//
// Each WebSocket connection on /ws owns one mask.Editor bound to a buffer
// held by the server. Clients send the user's intents (insert, delete,
// focus, cursor moves) as protocol.Request messages and receive the
// authoritative buffer after every one, so a browser or remote terminal can
// offer masked entry without reimplementing the editing rules.
//
// # Endpoints
//
//   - GET /ws: WebSocket upgrade (gorilla/websocket), one session per connection
//   - GET /healthz: returns "ok"
//
// # Lifecycle
//
//	srv, err := server.New(&server.Config{Host: "127.0.0.1", Port: 8765})
//	if err != nil {
//	    return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	return srv.Start(ctx) // blocks until ctx is cancelled
//
// On shutdown the server stops accepting connections, sends a going-away
// close frame to every session and waits for their goroutines to finish.
// Sessions are kept alive with pings; a peer that stops answering is dropped
// after 60 seconds.
//
// # TLS
//
// Setting Config.CertPath and Config.KeyPath serves wss:// with TLS 1.2 or
// later.
package server
