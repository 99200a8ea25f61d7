package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/artstack/notifykit/pkg/notification"
)

// Client talks to the REST notification service. It is the pull-side
// collaborator of the notification store: paginated history, authoritative
// unread counts, and read-state mutations.
//
// The zero value is not usable; use New.
type Client struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client. Useful for custom
// transports, proxies, or tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithSessionToken attaches a bearer token carrying the session credentials
// to every request.
func WithSessionToken(token string) Option {
	return func(cl *Client) {
		if token != "" {
			cl.headers["Authorization"] = "Bearer " + token
		}
	}
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) Option {
	return func(cl *Client) {
		if key != "" {
			cl.headers[key] = value
		}
	}
}

// New creates a client for the notification service at baseURL.
// The default HTTP client pools connections and applies a per-request
// timeout; individual calls additionally honor their context.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	cl := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(cl)
	}
	return cl, nil
}

// ListParams selects one page of notification history.
type ListParams struct {
	Page       int
	Limit      int
	OnlyUnread bool
	Types      []notification.Type
}

// envelope is the service's JSON response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// List fetches one page of notifications, newest first.
// GET /notifications?page=..&limit=..
func (c *Client) List(ctx context.Context, params ListParams) ([]notification.Notification, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.OnlyUnread {
		q.Set("only_unread", "true")
	}
	if len(params.Types) > 0 {
		names := make([]string, len(params.Types))
		for i, t := range params.Types {
			names[i] = string(t)
		}
		q.Set("types", strings.Join(names, ","))
	}

	data, err := c.do(ctx, http.MethodGet, "/notifications", q)
	if err != nil {
		return nil, err
	}

	var notifs []notification.Notification
	if err := json.Unmarshal(data, &notifs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return notifs, nil
}

// UnreadCount fetches the server's authoritative unread count.
// GET /notifications/unread-count
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	data, err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil)
	if err != nil {
		return 0, err
	}

	var body struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return body.UnreadCount, nil
}

// MarkRead marks a single notification as read.
// PATCH /notifications/{id}/read
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyNotificationID
	}
	_, err := c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil)
	return err
}

// MarkAllRead marks every notification of the session's user as read.
// PATCH /notifications/read-all
func (c *Client) MarkAllRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPatch, "/notifications/read-all", nil)
	return err
}

// do executes one request and unwraps the response envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 64KB cap keeps a misbehaving server from exhausting memory.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, sanitizeBody(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}
	return env.Data, nil
}

// sanitizeBody flattens and truncates a response body for error messages.
func sanitizeBody(raw []byte) string {
	s := strings.ReplaceAll(string(raw), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
