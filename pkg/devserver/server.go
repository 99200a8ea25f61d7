package devserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/artstack/notifykit/pkg/notification"
	"github.com/artstack/notifykit/pkg/socket"
)

const defaultListLimit = 5

type ctxKey int

const userIDKey ctxKey = 0

// Server is an in-memory notification service for local development and
// integration tests: the REST endpoints and the websocket push channel
// the client packages talk to, backed by per-user in-memory history.
//
// Requests authenticate with the X-User-ID header (the websocket endpoint
// also accepts a user_id query parameter). Server implements http.Handler
// and slots directly into httptest.NewServer.
type Server struct {
	store    *memoryStore
	router   chi.Router
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]map[*wsConn]bool
}

// wsConn serializes writes to a single websocket connection.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a dev notification server with empty history.
func New(opts ...Option) *Server {
	s := &Server{
		store:  newMemoryStore(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		conns:  make(map[string]map[*wsConn]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/notifications", s.handleList)
		r.Get("/notifications/unread-count", s.handleUnreadCount)
		r.Patch("/notifications/{id}/read", s.handleMarkRead)
		r.Patch("/notifications/read-all", s.handleMarkAllRead)
		r.Get("/ws", s.handleWS)
		r.Post("/dev/test-notification", s.handleTestNotification)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Seed stores notifications for a user without broadcasting them.
// Records are prepended, so seed oldest first.
func (s *Server) Seed(userID string, notifs ...notification.Notification) {
	for _, n := range notifs {
		s.store.add(userID, n)
	}
}

// Push stores a notification for a user and broadcasts it over every open
// websocket connection of that user.
func (s *Server) Push(userID string, n notification.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.store.add(userID, n)
	s.broadcast(userID, socket.EventReceiveNotification, n)
}

func (s *Server) broadcast(userID, event string, n notification.Notification) {
	frame := map[string]any{"event": event, "data": n}

	s.mu.Lock()
	targets := make([]*wsConn, 0, len(s.conns[userID]))
	for c := range s.conns[userID] {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.writeJSON(frame); err != nil {
			s.logger.Debug("websocket write failed", "user_id", userID, "error", err)
		}
	}
}

// requireUser resolves the calling user from the X-User-ID header or, for
// websocket dials, the user_id query parameter.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			userID = r.URL.Query().Get("user_id")
		}
		if userID == "" {
			s.writeError(w, http.StatusUnauthorized, "missing user identity")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := listFilter{page: 1, limit: defaultListLimit}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		f.page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		f.limit = v
	}
	f.onlyUnread = q.Get("only_unread") == "true"
	if raw := q.Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			f.types = append(f.types, notification.Type(t))
		}
	}

	s.writeData(w, s.store.list(userIDFromContext(r.Context()), f))
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, map[string]int{"unread_count": s.store.unreadCount(userIDFromContext(r.Context()))})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.markRead(userIDFromContext(r.Context()), id) {
		s.writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	s.writeData(w, nil)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	s.store.markAllRead(userIDFromContext(r.Context()))
	s.writeData(w, nil)
}

// handleTestNotification mints a notification of the requested type and
// delivers it to the caller over the push channel. Development helper.
func (s *Server) handleTestNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type string               `json:"type"`
		Data notification.Payload `json:"data"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Type == "" {
		body.Type = string(notification.TypeSystem)
	}

	n := notification.Notification{
		ID:        uuid.NewString(),
		Type:      notification.Type(body.Type),
		Data:      body.Data,
		CreatedAt: time.Now(),
	}
	uid := userIDFromContext(r.Context())
	s.store.add(uid, n)
	s.broadcast(uid, socket.EventTestNotification, n)
	s.writeData(w, n)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	uid := userIDFromContext(r.Context())
	c := &wsConn{conn: conn}

	s.mu.Lock()
	if s.conns[uid] == nil {
		s.conns[uid] = make(map[*wsConn]bool)
	}
	s.conns[uid][c] = true
	s.mu.Unlock()
	s.logger.Info("websocket connected", "user_id", uid)

	defer func() {
		s.mu.Lock()
		delete(s.conns[uid], c)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info("websocket closed", "user_id", uid)
	}()

	// Drain inbound frames; the dev server only pushes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// CloseConnections force-closes every open websocket of a user, simulating
// a connection loss for reconnect tests.
func (s *Server) CloseConnections(userID string) {
	s.mu.Lock()
	targets := make([]*wsConn, 0, len(s.conns[userID]))
	for c := range s.conns[userID] {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		_ = c.conn.Close()
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		s.logger.Debug("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: msg})
}
