package devserver

import (
	"slices"
	"sync"
	"time"

	"github.com/artstack/notifykit/pkg/notification"
)

// memoryStore keeps per-user notification history in memory, newest
// first. It exists for local development and tests only.
type memoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]notification.Notification
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byUser: make(map[string][]notification.Notification)}
}

func (s *memoryStore) add(userID string, n notification.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = append([]notification.Notification{n}, s.byUser[userID]...)
}

type listFilter struct {
	page       int
	limit      int
	onlyUnread bool
	types      []notification.Type
}

func (s *memoryStore) list(userID string, f listFilter) []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]notification.Notification, 0)
	for _, n := range s.byUser[userID] {
		if f.onlyUnread && n.IsRead {
			continue
		}
		if len(f.types) > 0 && !slices.Contains(f.types, n.Type) {
			continue
		}
		filtered = append(filtered, n)
	}

	start := (f.page - 1) * f.limit
	if start >= len(filtered) {
		return []notification.Notification{}
	}
	end := min(start+f.limit, len(filtered))
	return slices.Clone(filtered[start:end])
}

func (s *memoryStore) unreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byUser[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *memoryStore) markRead(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifs := s.byUser[userID]
	for i := range notifs {
		if notifs[i].ID == id {
			notifs[i].IsRead = true
			return true
		}
	}
	return false
}

func (s *memoryStore) markAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifs := s.byUser[userID]
	for i := range notifs {
		notifs[i].IsRead = true
	}
}
