package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstack/notifykit/pkg/apiclient"
	"github.com/artstack/notifykit/pkg/notification"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "valid https", baseURL: "https://api.artstack.test"},
		{name: "valid http", baseURL: "http://localhost:8080"},
		{name: "unsupported scheme", baseURL: "ftp://api.artstack.test", wantErr: true},
		{name: "missing host", baseURL: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := apiclient.New(tt.baseURL)
			if tt.wantErr {
				assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"n1","type":"like","is_read":false,"created_at":"2025-03-14T09:26:53Z"},
			{"id":"n2","type":"challenge_winner","is_read":true,"created_at":"bogus"}
		]}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithSessionToken("tok-1"))
	require.NoError(t, err)

	notifs, err := client.List(context.Background(), apiclient.ListParams{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, notifs, 2)
	assert.Equal(t, "n1", notifs[0].ID)
	assert.Equal(t, notification.TypeLike, notifs[0].Type)
	// Malformed timestamps survive decoding; repair happens at normalization.
	assert.True(t, notifs[1].CreatedAt.IsZero())
}

func TestClient_UnreadCount(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notifications/unread-count", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"unread_count":12}}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestClient_MarkRead(t *testing.T) {
	t.Parallel()

	t.Run("issues patch", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotMethod string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			_, _ = w.Write([]byte(`{"success":true,"data":null}`))
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		require.NoError(t, client.MarkRead(context.Background(), "n9"))
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/notifications/n9/read", gotPath)
	})

	t.Run("empty id rejected locally", func(t *testing.T) {
		t.Parallel()

		client, err := apiclient.New("http://localhost:1")
		require.NoError(t, err)
		assert.ErrorIs(t, client.MarkRead(context.Background(), ""), apiclient.ErrEmptyNotificationID)
	})
}

func TestClient_MarkAllRead(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, client.MarkAllRead(context.Background()))
	assert.Equal(t, "/notifications/read-all", gotPath)
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "session expired", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.UnreadCount(context.Background())
		require.ErrorIs(t, err, apiclient.ErrRequestFailed)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("success=false envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"rate limited"}`))
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.List(context.Background(), apiclient.ListParams{Page: 1, Limit: 5})
		require.ErrorIs(t, err, apiclient.ErrRequestFailed)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("malformed envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		_, err = client.UnreadCount(context.Background())
		assert.ErrorIs(t, err, apiclient.ErrDecodeResponse)
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = client.UnreadCount(ctx)
		assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
	})
}
