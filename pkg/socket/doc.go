// Package socket maintains the real-time push channel to the notification
// server: one websocket connection per authenticated session, automatic
// reconnection with exponential backoff, and a typed callback API for
// inbound notifications and connection-state changes.
//
// The client is an explicit, constructed object: the application's root
// composition owns it, injects it into the notification store, and calls
// Connect/Disconnect at session start and end.
//
//	client, err := socket.New("wss://push.artstack.io/ws",
//	    socket.WithSessionToken(token),
//	)
//	if err != nil { ... }
//
//	stop := client.OnNotification(func(n notification.Notification) {
//	    // n is already normalized
//	})
//	defer stop()
//
//	client.Connect(ctx)
//	defer client.Disconnect()
//
// # Failure semantics
//
// Transient connection loss is handled internally: the client redials with
// exponentially increasing delay (1s initial, doubling, capped at 30s by
// default) and announces each transition through OnConnectionChange. When
// the bounded retry budget is exhausted the client gives up, publishes a
// terminal error through OnError, and stays disconnected until Connect is
// called again. Connection errors are never returned to Connect or Emit
// callers directly.
//
// Emit is fire-and-forget: payloads sent while disconnected are dropped,
// not queued, and the caller gets ErrNotConnected.
package socket
