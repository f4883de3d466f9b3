// Package logger provides the structured slog setup shared by the bot:
// an ordered kv/json handler, an asynchronous fan-out sink, debug sampling
// and request metadata carried in context.
package logger

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/m3rciful/namebot/core/buildinfo"
	coreconfig "github.com/m3rciful/namebot/core/config"
)

// Component names used across the bot.
const (
	ComponentApp          = "app"
	ComponentTG           = "tg"
	ComponentWire         = "tg.wire"
	ComponentSender       = "tg.sender"
	ComponentDB           = "db"
	ComponentMigrate      = "db.migrate"
	ComponentNames        = "service.names"
	ComponentJournal      = "service.journal"
	ComponentConversation = "conversation"
)

var (
	initOnce   sync.Once
	shutdownMu sync.Mutex
	closed     bool

	out     *sink
	closers []io.Closer

	levelVar slog.LevelVar
	debug    = newSampler(1, 50)
	trace    bool

	// L is the root logger. Until Init runs it discards everything.
	L = slog.New(discardHandler{})

	// TG logs Telegram transport events.
	TG = L
	// TWire logs handler and command registration.
	TWire = L
	// DB logs database connectivity.
	DB = L
	// MIG logs schema migrations.
	MIG = L
)

// Init configures the global logger from cfg. Only the first call has effect.
func Init(cfg coreconfig.LoggingConfig) error {
	var initErr error
	initOnce.Do(func() {
		levelVar.Set(parseLevel(cfg.Level))
		if num, den, ok := parseRatio(cfg.DebugSample); ok {
			debug.set(num, den)
		}
		trace = truthy(os.Getenv("TRACE")) || truthy(os.Getenv("LOG_TRACE"))

		writers, files, err := openOutputs(cfg)
		if err != nil {
			initErr = err
			return
		}
		closers = files
		out = newSink(writers, 64*1024)

		L = slog.New(newHandler(handlerOptions{
			level:  &levelVar,
			sink:   out,
			format: parseFormat(cfg),
			order:  parseKeyOrder(cfg.KeysOrder),
		}))
		slog.SetDefault(L)
		bindComponents()

		L.LogAttrs(context.Background(), slog.LevelInfo, "startup",
			slog.String("component", ComponentApp),
			slog.String("event", "startup"),
			slog.String("go_version", runtime.Version()),
			slog.String("version", buildinfo.Version),
			slog.String("build_commit", buildinfo.Commit),
			slog.String("build_time", buildinfo.Date),
			slog.String("cfg_profile", profile(cfg)),
		)
	})
	return initErr
}

// InitLogger adapts Init to the bootstrap pipeline, which passes the whole core config.
func InitLogger(cfg *coreconfig.Config) error {
	if cfg == nil {
		return Init(coreconfig.LoggingConfig{})
	}
	return Init(cfg.Logging)
}

func bindComponents() {
	TG = Component(ComponentTG)
	TWire = Component(ComponentWire)
	DB = Component(ComponentDB)
	MIG = Component(ComponentMigrate)
}

// Shutdown flushes buffered output and closes log files.
func Shutdown() error {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if closed {
		return nil
	}
	closed = true

	var errs []error
	if out != nil {
		errs = append(errs, out.Flush(), out.Close())
	}
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func parseFormat(cfg coreconfig.LoggingConfig) format {
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	switch strings.ToLower(cfg.Profile) {
	case "debug", "dev":
		return formatKV
	}
	return formatJSON
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func parseKeyOrder(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "default" {
		return defaultKeyOrder
	}
	var order []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			order = append(order, k)
		}
	}
	if len(order) == 0 {
		return defaultKeyOrder
	}
	return order
}

func openOutputs(cfg coreconfig.LoggingConfig) ([]io.Writer, []io.Closer, error) {
	writers := []io.Writer{os.Stdout}
	dir, name := strings.TrimSpace(cfg.Dir), strings.TrimSpace(cfg.File)
	if dir == "" || name == "" {
		return writers, nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("logger: failed to create log dir %s: %v", dir, err)
		return writers, nil, nil
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: failed to open log file %s: %v", path, err)
		return writers, nil, nil
	}
	return append(writers, f), []io.Closer{f}, nil
}

func profile(cfg coreconfig.LoggingConfig) string {
	if p := strings.TrimSpace(cfg.Profile); p != "" {
		return strings.ToLower(p)
	}
	return "prod"
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Component returns the root logger scoped to a component.
func Component(name string) *slog.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		return L
	}
	return L.With("component", name)
}

// LogEvent writes one record with the event attribute first. A nil logger
// falls back to the one stored in ctx.
func LogEvent(ctx context.Context, l *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if l == nil {
		l = FromContext(ctx)
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	l.LogAttrs(ctx, level, "", attrs...)
}

// Debug logs a debug-level event for the given component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

// Info logs an info-level event for the given component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

// Warn logs a warn-level event for the given component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

// Error logs an error-level event for the given component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}

// ShouldSampleDebug reports whether a high-volume debug line should be written.
func ShouldSampleDebug() bool {
	return trace || debug.allow()
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
