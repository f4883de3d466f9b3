package telegram

import (
	"github.com/m3rciful/namebot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain registered with bot.Use.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}
