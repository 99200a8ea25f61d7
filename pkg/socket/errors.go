package socket

import "errors"

var (
	// ErrEmptyURL is returned by New when no URL is provided.
	ErrEmptyURL = errors.New("push channel URL is required")

	// ErrInvalidURL is returned by New for URLs with unsupported schemes.
	ErrInvalidURL = errors.New("push channel URL must use ws, wss, http, or https")

	// ErrNotConnected is returned by Emit when the payload was dropped
	// because no live connection exists. Outbound sends are never queued.
	ErrNotConnected = errors.New("socket not connected, event dropped")

	// ErrEncodeEvent is returned by Emit when the payload cannot be encoded.
	ErrEncodeEvent = errors.New("failed to encode outbound event")

	// ErrWriteFailed is returned by Emit when the write itself fails.
	ErrWriteFailed = errors.New("failed to write outbound event")

	// ErrRetriesExhausted is published to OnError subscribers when the
	// reconnection budget runs out. Recovery requires an explicit Connect
	// (a page reload in the UI).
	ErrRetriesExhausted = errors.New("reconnection attempts exhausted")
)
