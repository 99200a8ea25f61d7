package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/artstack/notifykit/pkg/fanout"
	"github.com/artstack/notifykit/pkg/logger"
	"github.com/artstack/notifykit/pkg/notification"
)

// Wire event names pushed by the notification server.
const (
	// EventReceiveNotification carries one notification record per event.
	EventReceiveNotification = "receive_notification"
	// EventTestNotification is the development-only variant of the above.
	EventTestNotification = "test_notification"
)

// envelope is the JSON frame exchanged over the socket.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client maintains one live connection to the notification push channel per
// authenticated session. It hides reconnection from its consumers: an
// unexpected loss triggers automatic redial with exponential backoff, and
// consumers observe only connection-change events and (after the retry
// budget runs out) a terminal error.
//
// Session credentials travel in the handshake headers; there is no
// per-message authentication.
type Client struct {
	url         string
	header      http.Header
	dialTimeout time.Duration
	pingPeriod  time.Duration
	pongWait    time.Duration
	backoff     BackoffStrategy
	maxAttempts int
	logger      *slog.Logger

	notifs  *fanout.Registry[notification.Notification]
	conns   *fanout.Registry[bool]
	errs    *fanout.Registry[error]
	writeMu sync.Mutex

	mu         sync.Mutex
	state      State
	attempts   int
	conn       *websocket.Conn
	cancel     context.CancelFunc
	generation int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBackoff replaces the reconnection schedule. Tests use FixedBackoff
// with a tiny interval to keep reconnect scenarios fast.
func WithBackoff(b BackoffStrategy) Option {
	return func(c *Client) {
		if b != nil {
			c.backoff = b
		}
	}
}

// WithDialTimeout bounds the websocket handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.dialTimeout = d
		}
	}
}

// WithMaxAttempts bounds consecutive failed dials before the client gives up
// and requires an explicit reconnect (page reload in the UI).
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithSessionToken attaches a bearer credential to the handshake request.
func WithSessionToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithRequestHeader adds an arbitrary handshake header.
func WithRequestHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" {
			c.header.Set(key, value)
		}
	}
}

// New creates a client for the push channel at rawURL. Plain http/https
// URLs are converted to their websocket equivalents, which keeps test
// server URLs usable as-is.
func New(rawURL string, opts ...Option) (*Client, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	switch {
	case strings.HasPrefix(rawURL, "http://"):
		rawURL = "ws://" + strings.TrimPrefix(rawURL, "http://")
	case strings.HasPrefix(rawURL, "https://"):
		rawURL = "wss://" + strings.TrimPrefix(rawURL, "https://")
	case strings.HasPrefix(rawURL, "ws://"), strings.HasPrefix(rawURL, "wss://"):
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	c := &Client{
		url:         rawURL,
		header:      make(http.Header),
		dialTimeout: 20 * time.Second,
		pingPeriod:  25 * time.Second,
		pongWait:    60 * time.Second,
		backoff:     DefaultBackoffStrategy(),
		maxAttempts: 10,
		logger:      slog.Default(),
		state:       StateDisconnected,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.notifs = fanout.New(fanout.WithLogger[notification.Notification](c.logger))
	c.conns = fanout.New(fanout.WithLogger[bool](c.logger))
	c.errs = fanout.New(fanout.WithLogger[error](c.logger))
	return c, nil
}

// OnNotification registers a callback invoked once per inbound notification,
// after normalization. Returns an unsubscribe function. All registered
// callbacks are invoked for every event, synchronously, in registration
// order.
func (c *Client) OnNotification(fn func(notification.Notification)) func() {
	return c.notifs.Subscribe(fn)
}

// OnConnectionChange registers a callback invoked on every transition
// between connected and disconnected, including the initial connect and
// every reconnect. Returns an unsubscribe function.
func (c *Client) OnConnectionChange(fn func(connected bool)) func() {
	return c.conns.Subscribe(fn)
}

// OnError registers a callback for terminal connection errors: the retry
// budget ran out and the client will not reconnect on its own. Returns an
// unsubscribe function.
func (c *Client) OnError(fn func(error)) func() {
	return c.errs.Subscribe(fn)
}

// Status returns a snapshot of the connection without blocking or I/O.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:     c.state,
		Connected: c.state == StateConnected,
		Attempts:  c.attempts,
	}
}

// Connect starts the connection lifecycle. It is idempotent: if the client
// is already live (connected, connecting, or reconnecting) the call is a
// no-op. Dialing happens in the background; failures surface through
// OnConnectionChange and OnError, never as a return value here.
func (c *Client) Connect(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateConnecting
	c.attempts = 0
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	go c.run(runCtx, gen)
}

// Disconnect tears down the active connection and suppresses any further
// automatic reconnection. Safe to call when already disconnected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if c.state == StateDisconnected && c.conn == nil && c.cancel == nil {
		c.mu.Unlock()
		return
	}
	c.generation++ // invalidates the running loop
	cancel := c.cancel
	c.cancel = nil
	conn := c.conn
	c.conn = nil
	wasConnected := c.state == StateConnected
	c.state = StateDisconnected
	c.attempts = 0
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = conn.Close()
	}
	if wasConnected {
		c.conns.Publish(false)
	}
}

// Emit sends an event to the server, best effort. When the socket is not
// connected the payload is dropped (not queued) and ErrNotConnected is
// returned after a logged warning. Delivery is at-most-once; nothing is
// buffered across disconnects.
func (c *Client) Emit(event string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		c.logger.Warn("dropping outbound event, socket not connected", logger.Event(event))
		return ErrNotConnected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeEvent, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// run owns the dial/read/redial cycle for one Connect call. It exits when
// the context is cancelled, the generation is invalidated by Disconnect, or
// the retry budget is exhausted.
func (c *Client) run(ctx context.Context, gen int) {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			c.mu.Lock()
			if gen != c.generation {
				c.mu.Unlock()
				return
			}
			c.attempts++
			attempts := c.attempts
			c.mu.Unlock()

			c.logger.Warn("notification socket dial failed",
				logger.Attempt(attempts), logger.Error(err))

			if attempts >= c.maxAttempts {
				c.mu.Lock()
				var cancel context.CancelFunc
				if gen == c.generation {
					c.state = StateDisconnected
					cancel = c.cancel
					c.cancel = nil
				}
				c.mu.Unlock()
				if cancel != nil {
					cancel()
				}
				c.logger.Error("notification socket retry budget exhausted, reload required",
					logger.Attempt(attempts))
				c.errs.Publish(fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, err))
				return
			}

			delay := c.backoff.NextInterval(attempts)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			_ = conn.Close()
			return
		}
		c.conn = conn
		c.state = StateConnected
		c.attempts = 0
		c.mu.Unlock()

		c.logger.Info("notification socket connected")
		c.conns.Publish(true)

		c.serve(ctx, conn)

		// Read loop ended. Either we were told to stop, or the connection
		// dropped unexpectedly and we enter the reconnect phase.
		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.conn = nil
		c.state = StateReconnecting
		c.mu.Unlock()

		c.logger.Warn("notification socket connection lost, reconnecting")
		c.conns.Publish(false)

		if ctx.Err() != nil {
			c.mu.Lock()
			var cancel context.CancelFunc
			if gen == c.generation {
				c.state = StateDisconnected
				cancel = c.cancel
				c.cancel = nil
			}
			c.mu.Unlock()
			if cancel != nil {
				cancel()
			}
			return
		}
	}
}

// dial performs one handshake attempt bounded by the dial timeout.
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: c.dialTimeout}
	conn, resp, err := dialer.DialContext(dialCtx, c.url, c.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// serve pumps inbound frames until the connection dies or ctx is cancelled.
// A ping ticker keeps intermediaries from idling the connection out; pongs
// extend the read deadline.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(c.pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
				c.writeMu.Unlock()
				if err != nil {
					return
				}
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(c.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			return
		}
		c.dispatch(raw)
	}
}

// dispatch decodes one inbound frame and fans out notification events.
// Malformed frames are logged and dropped; they never kill the connection.
func (c *Client) dispatch(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("discarding malformed socket frame", logger.Error(err))
		return
	}

	switch env.Event {
	case EventReceiveNotification, EventTestNotification:
		var n notification.Notification
		if err := json.Unmarshal(env.Data, &n); err != nil {
			c.logger.Warn("discarding malformed notification payload",
				logger.Event(env.Event), logger.Error(err))
			return
		}
		n = notification.Normalize(n)
		c.notifs.Publish(n)
	default:
		c.logger.Debug("ignoring unknown socket event", logger.Event(env.Event))
	}
}
