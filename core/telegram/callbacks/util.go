// Package callbacks parses Telebot callback data into a routing key.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse decodes Telebot's \f<unique>|<payload> encoding.
// Returns the routing key and payload (payload may be empty).
func Parse(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	key := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return key, payload
}

// Key returns the routing key for the current callback, if any.
func Key(c tele.Context) string {
	k, _ := Parse(c.Callback())
	return k
}
