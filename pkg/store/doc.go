// Package store is the session-scoped source of truth for notification
// state. It layers pagination, unread counting, optimistic read-state
// mutations, and reconnect resync on top of two injected collaborators:
// the REST client (pull) and the push channel client (push).
//
// The store holds notifications newest first, deduplicated by id across
// both sources. The unread counter is an independent value seeded from
// the server's unread-count endpoint, incremented on pushes, and
// decremented by optimistic mark-read calls, never below zero.
//
//	st, err := store.New(api, sock,
//	    store.WithNavigator(router),
//	    store.WithPreferences(prefs),
//	)
//	if err != nil { ... }
//
//	stop := st.OnChange(func(snap store.Snapshot) {
//	    render(snap)
//	})
//	defer stop()
//
//	if err := st.Start(ctx); err != nil { ... } // initial sync failed; pushes still flow
//	defer st.Stop()
//
// Read-state mutations are optimistic: the local flip happens before the
// server call and is never rolled back on rejection. The server stays
// authoritative through resyncs, which re-fetch the first page and the
// unread count whenever the push channel comes back after a loss.
package store
