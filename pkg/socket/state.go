package socket

// State names a position in the connection lifecycle.
//
// The lifecycle is:
//
//	Disconnected -> Connecting -> Connected
//	Connected -> Reconnecting -> Connected          (transient loss)
//	Reconnecting -> Disconnected                    (retry budget exhausted)
//	any -> Disconnected                             (explicit Disconnect)
type State string

const (
	// StateDisconnected is the initial state, and the terminal state after an
	// explicit Disconnect or an exhausted retry budget.
	StateDisconnected State = "disconnected"
	// StateConnecting covers the initial dial sequence.
	StateConnecting State = "connecting"
	// StateConnected means the handshake completed and the read loop is live.
	StateConnected State = "connected"
	// StateReconnecting covers automatic redial after an unexpected loss.
	StateReconnecting State = "reconnecting"
)

// Status is a synchronous snapshot of the connection. Obtaining one never
// blocks or performs I/O.
type Status struct {
	State State
	// Connected is true only in StateConnected.
	Connected bool
	// Attempts counts consecutive failed dials since the last successful
	// handshake. It resets to zero on every successful connect.
	Attempts int
}
