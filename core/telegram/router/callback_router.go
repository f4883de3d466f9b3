package router

import (
	"log/slog"
	"time"

	tg "github.com/m3rciful/namebot/core/telegram"
	"github.com/m3rciful/namebot/core/telegram/callbacks"
	"github.com/m3rciful/namebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions customises key resolution and fallback behaviour for callbacks.
type CallbackOptions struct {
	// Key maps raw callback data to a registry key. It reports false for data
	// that cannot be routed. Defaults to the part before the first separator.
	Key      func(data string) (string, bool)
	NotFound tele.HandlerFunc
}

func defaultKey(data string) (string, bool) {
	key, _ := callbacks.Split(data)
	return key, key != ""
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Handlers are responsible for answering the callback query.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	keyOf := opts.Key
	if keyOf == nil {
		keyOf = defaultKey
	}

	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		data := callbacks.Data(c)
		key, ok := keyOf(data)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		var cbHandler tele.HandlerFunc
		if ok {
			cbHandler, ok = reg.GetCallback(key)
		}
		if !ok || cbHandler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return newSummary(name, start, extras...).skip().run(c, func() error {
				if fallback != nil {
					return fallback(c)
				}
				return c.Respond()
			})
		}

		return newSummary(name, start, extras...).run(c, func() error {
			return cbHandler(c)
		})
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
