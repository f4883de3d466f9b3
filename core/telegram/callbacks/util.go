// Package callbacks reads raw callback data of the form <KEY>_<payload>.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Separator divides the routing key from the payload.
const Separator = "_"

// Split returns the routing key and payload of raw callback data. Data
// without a separator is all key.
func Split(data string) (string, string) {
	data = strings.TrimSpace(data)
	key, payload, _ := strings.Cut(data, Separator)
	return key, payload
}

// Data returns the trimmed raw callback data of the current update.
func Data(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return strings.TrimSpace(cb.Data)
}

// Key returns the routing key of the current callback.
func Key(c tele.Context) string {
	k, _ := Split(Data(c))
	return k
}

// Payload returns everything after the routing key.
func Payload(c tele.Context) string {
	_, p := Split(Data(c))
	return p
}
