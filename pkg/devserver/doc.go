// Package devserver is an in-memory notification service for local
// development and integration tests. It serves the same REST surface and
// websocket push channel the client packages consume, so the full client
// stack can be exercised without the production backend.
//
//	srv := httptest.NewServer(devserver.New())
//	defer srv.Close()
//
//	api, _ := apiclient.New(srv.URL, apiclient.WithHeader("X-User-ID", "u1"))
//	sock, _ := socket.New(srv.URL+"/ws", socket.WithRequestHeader("X-User-ID", "u1"))
//
// History lives per user in memory and is lost on shutdown. Push delivers
// a notification to every open websocket of the target user; Seed loads
// history silently; CloseConnections simulates a connection loss.
package devserver
