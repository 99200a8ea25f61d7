package notification

// Payload is the open, type-dependent body of a notification. Its shape
// varies per Type (sender identity for likes and follows, challenge
// references for challenge events, free-text for system messages) and is
// treated as untrusted: every accessor tolerates absent or mistyped fields
// by returning the zero value.
type Payload map[string]any

// Has reports whether the key is present, regardless of its value's type.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the value under key if it is a string, otherwise "".
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the value under key coerced to int. JSON numbers decode as
// float64, so both representations are accepted. Returns 0 otherwise.
func (p Payload) Int(key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Bool returns the value under key if it is a bool, otherwise false.
func (p Payload) Bool(key string) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return false
}

// Map returns the nested object under key, or nil when absent or not an
// object. The result is again a Payload so accessors chain safely.
func (p Payload) Map(key string) Payload {
	if v, ok := p[key].(map[string]any); ok {
		return Payload(v)
	}
	return nil
}

// Sender describes the acting user attached to social notifications
// (like, comment, reply, follow, mention).
type Sender struct {
	ID       string
	Username string
	Avatar   string
}

// Sender extracts the sender identity from the payload. Fields that are
// absent stay empty; the result is usable regardless of payload shape.
func (p Payload) Sender() Sender {
	return Sender{
		ID:       p.String("sender_id"),
		Username: p.String("sender_username"),
		Avatar:   p.String("sender_avatar"),
	}
}

// Message returns the free-text message carried by the payload, if any.
// Unknown notification types are guaranteed at least this accessor.
func (p Payload) Message() string {
	return p.String("message")
}
