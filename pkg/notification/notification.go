package notification

import (
	"encoding/json"
	"time"
)

// Type tags a notification with its event category. The vocabulary is closed
// on the server side, but clients must tolerate values outside of it: an
// unrecognized type renders with a generic presentation instead of failing.
type Type string

const (
	TypeLike                Type = "like"
	TypeComment             Type = "comment"
	TypeReply               Type = "reply"
	TypeFollow              Type = "follow"
	TypeMessage             Type = "message"
	TypeMention             Type = "mention"
	TypeSystem              Type = "system"
	TypeAchievementUnlocked Type = "achievement_unlocked"
	TypeLevelUp             Type = "level_up"
	TypeExpGain             Type = "exp_gain"
	TypeChallengeWinner     Type = "challenge_winner"
	TypeChallengeBadge      Type = "challenge_badge"
	TypeChallengeDeadline   Type = "challenge_deadline"
	TypePostLeaderboard     Type = "post_leaderboard"
	TypePostFeatured        Type = "post_featured"
	TypePostBookmarked      Type = "post_bookmarked"
)

var knownTypes = map[Type]struct{}{
	TypeLike: {}, TypeComment: {}, TypeReply: {}, TypeFollow: {},
	TypeMessage: {}, TypeMention: {}, TypeSystem: {},
	TypeAchievementUnlocked: {}, TypeLevelUp: {}, TypeExpGain: {},
	TypeChallengeWinner: {}, TypeChallengeBadge: {}, TypeChallengeDeadline: {},
	TypePostLeaderboard: {}, TypePostFeatured: {}, TypePostBookmarked: {},
}

// Known reports whether the type belongs to the documented vocabulary.
func (t Type) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Notification is a single event delivered to a user. The same record shape
// arrives over both the paginated REST fetch and the real-time push channel.
type Notification struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Data        Payload   `json:"data,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	RedirectURL string    `json:"redirect_url,omitempty"`
}

// ResolveRedirect returns the navigation target for the notification.
// The top-level redirect_url takes precedence over data.redirect_url.
// Returns an empty string when neither location carries a target.
func (n Notification) ResolveRedirect() string {
	if n.RedirectURL != "" {
		return n.RedirectURL
	}
	return n.Data.String("redirect_url")
}

// timeFormats lists accepted created_at layouts, tried in order. Servers have
// been observed emitting all of these for the same field.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// wireNotification mirrors Notification but keeps created_at as a raw string
// so malformed values survive decoding and can be repaired by Normalize.
type wireNotification struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Data        Payload `json:"data"`
	IsRead      bool    `json:"is_read"`
	CreatedAt   string  `json:"created_at"`
	RedirectURL string  `json:"redirect_url"`
}

// UnmarshalJSON decodes a record without rejecting malformed timestamps.
// A created_at value that is missing, null, or unparseable leaves CreatedAt
// at its zero value; Normalize then substitutes the current instant.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var w wireNotification
	if err := json.Unmarshal(data, &w); err != nil {
		// Retry with created_at as an arbitrary JSON value. Some servers emit
		// numbers or null for the field; those decode as "unparseable" below.
		type loose struct {
			ID          string          `json:"id"`
			Type        Type            `json:"type"`
			Data        Payload         `json:"data"`
			IsRead      bool            `json:"is_read"`
			CreatedAt   json.RawMessage `json:"created_at"`
			RedirectURL string          `json:"redirect_url"`
		}
		var l loose
		if err2 := json.Unmarshal(data, &l); err2 != nil {
			return err
		}
		w = wireNotification{ID: l.ID, Type: l.Type, Data: l.Data, IsRead: l.IsRead, RedirectURL: l.RedirectURL}
	}

	n.ID = w.ID
	n.Type = w.Type
	n.Data = w.Data
	n.IsRead = w.IsRead
	n.RedirectURL = w.RedirectURL
	n.CreatedAt = parseTimestamp(w.CreatedAt)
	return nil
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize repairs a record so it is always safe to render. The only field
// that requires repair is CreatedAt: a zero (missing or unparseable) value is
// replaced with the current instant so downstream relative-time formatting
// never sees an invalid date. Normalize is pure with respect to valid input:
// applying it to an already-valid record returns the record unchanged, so
// applying it twice equals applying it once.
func Normalize(n Notification) Notification {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return n
}
