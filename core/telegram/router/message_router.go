package router

import (
	"time"

	tg "github.com/m3rciful/namebot/core/telegram"
	"github.com/m3rciful/namebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for plain text: registered commands and their
// aliases first, then the registry text fallback, then UnknownText.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return newSummary(normalizeHandlerName(key), start).run(c, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return newSummary("fallback", start).run(c, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return newSummary("unknown_text", start).run(c, func() error {
				return opts.UnknownText(c)
			})
		}

		newSummary("unknown_text", start).skip().log(c, nil)
		return nil
	}

	return []tg.Route{{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}}
}

// QueryRoute binds an inline query handler with the shared middleware and summary.
func QueryRoute(h tele.HandlerFunc) tg.Route {
	handler := func(c tele.Context) error {
		return newSummary("inline", time.Now()).run(c, func() error {
			return h(c)
		})
	}
	return tg.Route{
		Endpoint: tele.OnQuery,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
