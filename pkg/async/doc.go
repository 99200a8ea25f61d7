// Package async provides a minimal Future abstraction for running
// independent operations concurrently and joining on their results.
//
// The notification store uses it to issue its initial page fetch and
// unread-count fetch in parallel during session start and reconnect resync:
//
//	page := async.Async(ctx, func(ctx context.Context) ([]Notification, error) {
//	    return api.List(ctx, params)
//	})
//	count := async.Async(ctx, func(ctx context.Context) (int, error) {
//	    return api.UnreadCount(ctx)
//	})
//	notifs, err := page.Await()
//	unread, err2 := count.Await()
package async
