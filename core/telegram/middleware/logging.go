package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/namebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// recentUpdates keeps a short-lived set of processed update IDs to avoid double logging.
var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// LoggerMiddleware stores the request context (rid and update metadata) and
// writes one sampled receipt line per update. Receipts are deduplicated by
// update_id because the middleware runs both globally and per route.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.NewRequestContext(c)
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		if logger.ShouldSampleDebug() && !alreadyLogged(upd.ID) {
			attrs := []slog.Attr{slog.String("status", "ok")}
			if chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil {
				if user.Username != "" {
					attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
				}
				if user.LanguageCode != "" {
					attrs = append(attrs, slog.String("lang", user.LanguageCode))
				}
			}

			switch {
			case upd.Callback != nil:
				key, payload := callbacks.Split(upd.Callback.Data)
				attrs = append(attrs,
					slog.String("kind", "callback"),
					slog.String("cb_key", logger.SanitizeLimit(key, 64)),
					slog.String("payload", logger.SanitizeLimit(payload, 128)),
				)
			case upd.Query != nil:
				attrs = append(attrs,
					slog.String("kind", "inline"),
					slog.String("query", logger.SanitizeLimit(upd.Query.Text, 128)),
				)
			case upd.Message != nil:
				attrs = append(attrs,
					slog.String("kind", "message"),
					slog.String("payload", logger.SanitizeLimit(c.Text(), 256)),
				)
			}
			logger.LogEvent(ctx, logger.Component(logger.ComponentTG), slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
