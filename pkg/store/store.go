package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/artstack/notifykit/pkg/apiclient"
	"github.com/artstack/notifykit/pkg/async"
	"github.com/artstack/notifykit/pkg/fanout"
	"github.com/artstack/notifykit/pkg/notification"
)

const defaultPageLimit = 5

// Snapshot is an immutable view of the store's state, delivered to
// OnChange subscribers after every mutation. Notifications are ordered
// newest first.
type Snapshot struct {
	Notifications []notification.Notification
	UnreadCount   int
	Page          int
	HasMore       bool
	Loading       bool
	Connected     bool
}

// Store is the single source of truth for a session's notification state.
// It merges two event sources: REST pages pulled through the API
// collaborator and live records pushed over the Socket collaborator.
//
// All methods are safe for concurrent use. Subscribers registered through
// OnChange observe every state transition; the store never hands out
// internal slices or maps.
type Store struct {
	api   API
	sock  Socket
	nav   Navigator
	prefs Preferences
	sound SoundPlayer

	pageLimit int
	logger    *slog.Logger

	changes *fanout.Registry[Snapshot]
	errs    *fanout.Registry[error]

	mu            sync.Mutex
	byID          map[string]notification.Notification
	order         []string
	unread        int
	page          int
	hasMore       bool
	loading       bool
	connected     bool
	everConnected bool
	started       bool
	runCtx        context.Context
	cancel        context.CancelFunc
	unsubs        []func()
}

// New creates a store wired to the given REST and push collaborators.
func New(api API, sock Socket, opts ...Option) (*Store, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	if sock == nil {
		return nil, ErrNilSocket
	}

	s := &Store{
		api:       api,
		sock:      sock,
		pageLimit: defaultPageLimit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		byID:      make(map[string]notification.Notification),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.changes = fanout.New(fanout.WithLogger[Snapshot](s.logger))
	s.errs = fanout.New(fanout.WithLogger[error](s.logger))
	return s, nil
}

// OnChange registers a subscriber invoked with a fresh Snapshot after
// every state mutation. The returned function removes the subscription.
func (s *Store) OnChange(fn func(Snapshot)) func() {
	return s.changes.Subscribe(fn)
}

// OnError registers a subscriber for failures on asynchronous paths:
// reconnect resyncs and rejected optimistic mutations. Synchronous
// methods additionally return their errors directly.
func (s *Store) OnError(fn func(error)) func() {
	return s.errs.Subscribe(fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	notifs := make([]notification.Notification, 0, len(s.order))
	for _, id := range s.order {
		notifs = append(notifs, s.byID[id])
	}
	return Snapshot{
		Notifications: notifs,
		UnreadCount:   s.unread,
		Page:          s.page,
		HasMore:       s.hasMore,
		Loading:       s.loading,
		Connected:     s.connected,
	}
}

func (s *Store) publishChange() {
	s.changes.Publish(s.Snapshot())
}

// Start connects the push channel, subscribes to its events, and performs
// the initial sync: first history page and authoritative unread count,
// fetched in parallel. The sync error, if any, is returned; the store
// stays started either way so live pushes and retries keep working.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	runCtx, cancel := context.WithCancel(ctx)
	s.runCtx = runCtx
	s.cancel = cancel
	s.unsubs = []func(){
		s.sock.OnNotification(s.handlePush),
		s.sock.OnConnectionChange(s.handleConnectionChange),
	}
	s.mu.Unlock()

	s.sock.Connect(runCtx)
	return s.sync(runCtx)
}

// Stop disconnects the push channel, drops subscriptions, and resets all
// local state. Safe to call on a stopped store.
func (s *Store) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	unsubs := s.unsubs
	s.cancel = nil
	s.runCtx = nil
	s.unsubs = nil
	s.byID = make(map[string]notification.Notification)
	s.order = nil
	s.unread = 0
	s.page = 0
	s.hasMore = false
	s.loading = false
	s.connected = false
	s.everConnected = false
	s.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
	s.sock.Disconnect()
	s.publishChange()
}

// Load fetches one page of history. With appendPage false it fetches the
// first page and replaces the local list; with appendPage true it fetches
// the page after the current cursor and appends, skipping records already
// held. Zero fields in params are filled from the store's defaults.
//
// Only one load runs at a time; an overlapping call gets ErrLoadInProgress.
func (s *Store) Load(ctx context.Context, params apiclient.ListParams, appendPage bool) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInProgress
	}
	s.loading = true
	if params.Page == 0 {
		params.Page = 1
		if appendPage {
			params.Page = s.page + 1
		}
	}
	if params.Limit == 0 {
		params.Limit = s.pageLimit
	}
	s.mu.Unlock()
	s.publishChange()

	notifs, err := s.api.List(ctx, params)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.publishChange()
		s.logger.Error("failed to load notifications", "page", params.Page, "error", err)
		return fmt.Errorf("load notifications: %w", err)
	}

	if !appendPage {
		s.byID = make(map[string]notification.Notification, len(notifs))
		s.order = s.order[:0]
	}
	for _, n := range notifs {
		n = notification.Normalize(n)
		if _, ok := s.byID[n.ID]; ok {
			continue
		}
		s.byID[n.ID] = n
		s.order = append(s.order, n.ID)
	}
	s.page = params.Page
	// A short page means the history is exhausted.
	s.hasMore = len(notifs) == params.Limit
	s.mu.Unlock()

	s.publishChange()
	return nil
}

// LoadMore fetches the next history page. It is a no-op while a load is
// in flight or when the history is already exhausted.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loading || !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.Load(ctx, apiclient.ListParams{}, true)
}

// RefreshUnreadCount replaces the local unread counter with the server's
// authoritative value.
func (s *Store) RefreshUnreadCount(ctx context.Context) error {
	count, err := s.api.UnreadCount(ctx)
	if err != nil {
		s.logger.Error("failed to refresh unread count", "error", err)
		return fmt.Errorf("refresh unread count: %w", err)
	}

	s.mu.Lock()
	s.unread = count
	s.mu.Unlock()
	s.publishChange()
	return nil
}

// MarkAsRead optimistically flips the local record to read and decrements
// the unread counter, then tells the server. A server rejection is
// returned and published through OnError, but the optimistic flip is
// kept; the next resync repairs any divergence.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	n, ok := s.byID[id]
	if ok && !n.IsRead {
		n.IsRead = true
		s.byID[id] = n
		if s.unread > 0 {
			s.unread--
		}
	}
	s.mu.Unlock()
	if ok {
		s.publishChange()
	}

	if err := s.api.MarkRead(ctx, id); err != nil {
		s.logger.Error("failed to mark notification read", "notification_id", id, "error", err)
		err = fmt.Errorf("mark read: %w", err)
		s.errs.Publish(err)
		return err
	}
	return nil
}

// MarkAllAsRead optimistically flips every local record to read and zeroes
// the unread counter, then tells the server. Like MarkAsRead, a server
// rejection does not roll the local state back.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	s.mu.Lock()
	for id, n := range s.byID {
		if !n.IsRead {
			n.IsRead = true
			s.byID[id] = n
		}
	}
	s.unread = 0
	s.mu.Unlock()
	s.publishChange()

	if err := s.api.MarkAllRead(ctx); err != nil {
		s.logger.Error("failed to mark all notifications read", "error", err)
		err = fmt.Errorf("mark all read: %w", err)
		s.errs.Publish(err)
		return err
	}
	return nil
}

// HandleClick performs the interaction flow for a clicked notification:
// mark it read if unread, then navigate to its resolved redirect path.
// A failed mark-read never blocks navigation.
func (s *Store) HandleClick(ctx context.Context, n notification.Notification) error {
	if !n.IsRead && n.ID != "" {
		if err := s.MarkAsRead(ctx, n.ID); err != nil {
			s.logger.Warn("mark-read on click failed, navigating anyway",
				"notification_id", n.ID, "error", err)
		}
	}

	path := n.ResolveRedirect()
	if path == "" || s.nav == nil {
		return nil
	}
	if err := s.nav.Navigate(ctx, path); err != nil {
		return fmt.Errorf("navigate to %s: %w", path, err)
	}
	return nil
}

// sync fetches the first history page and the unread count in parallel.
func (s *Store) sync(ctx context.Context) error {
	loadF := async.Async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Load(ctx, apiclient.ListParams{}, false)
	})
	countF := async.Async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.RefreshUnreadCount(ctx)
	})

	_, err := async.WaitAll(loadF, countF)
	return err
}

// handlePush folds a live notification into the local state: prepend,
// bump the unread counter, play the cue, announce the change. Records
// already held locally are dropped.
func (s *Store) handlePush(n notification.Notification) {
	n = notification.Normalize(n)

	s.mu.Lock()
	if _, ok := s.byID[n.ID]; ok {
		s.mu.Unlock()
		s.logger.Debug("duplicate pushed notification dropped", "notification_id", n.ID)
		return
	}
	s.byID[n.ID] = n
	s.order = append([]string{n.ID}, s.order...)
	if !n.IsRead {
		s.unread++
	}
	ctx := s.runCtx
	s.mu.Unlock()

	s.playCue(ctx)
	s.publishChange()
}

// playCue plays the arrival sound when preferences allow. Failures are
// cosmetic and only logged.
func (s *Store) playCue(ctx context.Context) {
	if s.sound == nil {
		return
	}
	if s.prefs != nil && !s.prefs.SoundEnabled() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.sound.Play(ctx); err != nil {
		s.logger.Debug("notification sound failed", "error", err)
	}
}

// handleConnectionChange tracks the push channel state. A regained
// connection (after at least one earlier one) triggers a background
// resync to repair drift accumulated while offline.
func (s *Store) handleConnectionChange(connected bool) {
	s.mu.Lock()
	s.connected = connected
	resync := false
	if connected {
		resync = s.everConnected
		s.everConnected = true
	}
	ctx := s.runCtx
	s.mu.Unlock()

	s.publishChange()

	if !resync || ctx == nil {
		return
	}
	go func() {
		s.logger.Info("push channel regained, resyncing")
		if err := s.sync(ctx); err != nil {
			s.errs.Publish(fmt.Errorf("resync after reconnect: %w", err))
		}
	}()
}
