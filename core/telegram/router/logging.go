package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/namebot/core/logger"
	tghelpers "github.com/m3rciful/namebot/core/telegram/helpers"
	"github.com/m3rciful/namebot/core/telegram/middleware"
	"github.com/m3rciful/namebot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// summary is the one "handler.handled" line logged per routed update.
type summary struct {
	handler string
	start   time.Time
	status  string
	attrs   []slog.Attr
}

func newSummary(handler string, start time.Time, attrs ...slog.Attr) *summary {
	return &summary{handler: handler, start: start, attrs: attrs}
}

// skip marks the update as not handled by a registered route.
func (s *summary) skip() *summary {
	s.status = "skip"
	return s
}

// run executes fn under the handler name and logs its outcome.
func (s *summary) run(c tele.Context, fn func() error) error {
	tghelpers.WithHandler(c, s.handler)
	err := fn()
	s.log(c, err)
	return err
}

func (s *summary) log(c tele.Context, err error) {
	ctx := tghelpers.WithHandler(c, s.handler)
	msgs, kb := middleware.GetCounters(c)

	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	status := s.status
	if status == "" {
		status = outcome
	}

	attrs := make([]slog.Attr, 0, 9+len(s.attrs))
	attrs = append(attrs,
		slog.String("status", status),
		slog.String("handler", s.handler),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", time.Since(s.start)),
	)
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(netutil.Redact(err), 256)),
			slog.String("err_code", deriveErrorCode(err)),
			slog.String("cause", s.handler),
		)
	}
	attrs = append(attrs, s.attrs...)
	logger.LogEvent(ctx, logger.TG, level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// deriveErrorCode prefers an explicit Code() on the chain, then the transport
// error kind, then the concrete error type name.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	type coder interface{ Code() string }
	var c coder
	if errors.As(err, &c) {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	if kind := netutil.Classify(err); kind != netutil.KindUnknown {
		return strings.ToUpper(kind)
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(t.Name())
	}
	return "UNKNOWN_ERROR"
}
