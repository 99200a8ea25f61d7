package apiclient

import "errors"

var (
	// ErrInvalidBaseURL is returned by New when the service URL is unusable.
	ErrInvalidBaseURL = errors.New("invalid notification service URL")

	// ErrRequestFailed is returned for transport failures, non-2xx responses,
	// and envelopes with success=false.
	ErrRequestFailed = errors.New("notification service request failed")

	// ErrDecodeResponse is returned when a response body cannot be decoded.
	ErrDecodeResponse = errors.New("failed to decode notification service response")

	// ErrEmptyNotificationID is returned by MarkRead when no id is provided.
	ErrEmptyNotificationID = errors.New("notification id is required")
)
