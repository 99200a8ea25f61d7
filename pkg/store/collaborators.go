package store

import (
	"context"

	"github.com/artstack/notifykit/pkg/apiclient"
	"github.com/artstack/notifykit/pkg/notification"
)

// API is the pull-side collaborator: the REST notification service.
// *apiclient.Client satisfies it.
type API interface {
	List(ctx context.Context, params apiclient.ListParams) ([]notification.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Socket is the push-side collaborator: the real-time channel.
// *socket.Client satisfies it.
type Socket interface {
	Connect(ctx context.Context)
	Disconnect()
	OnNotification(fn func(notification.Notification)) func()
	OnConnectionChange(fn func(connected bool)) func()
}

// Navigator transitions the visible UI to a path. The store only ever
// supplies a path string; history mechanics belong to the UI layer.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Preferences gates cosmetic behavior on persisted user settings.
// *prefs.Preferences satisfies it.
type Preferences interface {
	SoundEnabled() bool
}

// SoundPlayer plays the audible cue for a newly arrived notification.
// Failures are cosmetic and are swallowed with a log line.
type SoundPlayer interface {
	Play(ctx context.Context) error
}
