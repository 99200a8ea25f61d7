package store

import "errors"

var (
	// ErrNilAPI is returned when the store is constructed without a REST client.
	ErrNilAPI = errors.New("api client is required")
	// ErrNilSocket is returned when the store is constructed without a push channel.
	ErrNilSocket = errors.New("socket client is required")
	// ErrAlreadyStarted is returned by Start on a running store.
	ErrAlreadyStarted = errors.New("store already started")
	// ErrLoadInProgress is returned when a load overlaps an in-flight one.
	ErrLoadInProgress = errors.New("load already in progress")
)
