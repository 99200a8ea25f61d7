// Package notifykit is a client SDK for the platform's real-time
// notification system. It covers both halves of notification delivery:
// the live push channel and the REST history that backs it.
//
// The packages compose bottom-up:
//
//   - pkg/notification: the wire model, tolerant decoding, and
//     normalization shared by every other package.
//   - pkg/fanout: generic subscription registry used for every
//     callback surface in the kit.
//   - pkg/socket: the websocket push channel with automatic
//     reconnection and exponential backoff.
//   - pkg/apiclient: the REST client for history pages, unread counts,
//     and read-state mutations.
//   - pkg/store: the session-scoped source of truth merging both
//     sources, with pagination, optimistic mark-read, and reconnect
//     resync.
//   - pkg/prefs: persisted user preferences gating cosmetic behavior.
//   - pkg/devserver, pkg/httpserver, cmd/notifydev: an in-memory
//     backend for local development and integration tests.
//
// Applications construct an apiclient.Client and a socket.Client, hand
// both to store.New, subscribe to store.OnChange, and render snapshots.
package notifykit
