// Package apiclient implements the HTTP client for the REST notification
// service: paginated history, unread counts, and read-state mutations.
//
// Responses use the service's `{success, data}` envelope; failures surface
// as ErrRequestFailed wrapped with status and a truncated body. The client
// performs no retries — callers decide how failures reach the user.
//
//	client, err := apiclient.New("https://api.artstack.io",
//	    apiclient.WithSessionToken(token),
//	)
//	if err != nil { ... }
//
//	notifs, err := client.List(ctx, apiclient.ListParams{Page: 1, Limit: 5})
package apiclient
