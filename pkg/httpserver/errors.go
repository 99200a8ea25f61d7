package httpserver

import "errors"

var (
	// ErrNilHandler is returned by Run when no handler is provided.
	ErrNilHandler = errors.New("handler is required")
	// ErrAlreadyRunning is returned by Run on a server that is already serving.
	ErrAlreadyRunning = errors.New("server already running")
	// ErrServeFailed wraps listener and serve failures.
	ErrServeFailed = errors.New("serve failed")
	// ErrShutdownFailed wraps graceful shutdown failures.
	ErrShutdownFailed = errors.New("shutdown failed")
)
