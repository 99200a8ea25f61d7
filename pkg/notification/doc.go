// Package notification defines the notification record that flows through
// the client: the closed type vocabulary, the open type-dependent payload,
// and the normalization step that repairs malformed server data.
//
// Records arrive over two paths, a paginated REST fetch and a real-time
// push channel, and both converge on Normalize before entering application
// state. After normalization every record has a valid CreatedAt, so
// rendering code never has to special-case timestamp validity.
//
// # Usage
//
//	var n notification.Notification
//	if err := json.Unmarshal(raw, &n); err != nil {
//	    return err
//	}
//	n = notification.Normalize(n)
//
//	target := n.ResolveRedirect() // top-level redirect_url wins over data.redirect_url
//	who := n.Data.Sender()        // tolerant of absent fields
package notification
