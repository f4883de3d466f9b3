package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrInvalidCallback is returned for a callback registration without key or handler.
	ErrInvalidCallback = errors.New("invalid callback registration")
	// ErrInvalidCommand is returned for a command without slash prefix, handler or description.
	ErrInvalidCommand = errors.New("invalid command registration")
	// ErrDuplicate is returned when a command, alias or callback key is taken.
	ErrDuplicate = errors.New("already registered")
)

// Registry holds bot commands and callbacks. It is safe for concurrent use.
type Registry struct {
	mu               sync.RWMutex
	commands         map[string]commands.Command
	aliases          map[string]string
	callbacks        map[string]tele.HandlerFunc
	callbackNotFound tele.HandlerFunc
	textFallback     tele.HandlerFunc
}

// NewRegistry creates an empty Registry. Unknown callbacks get an "Unsupported action" toast.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		aliases:   make(map[string]string),
		callbacks: make(map[string]tele.HandlerFunc),
		callbackNotFound: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

func rejectRegistration(event string, err error, attrs ...slog.Attr) error {
	attrs = append(attrs, slog.String("reason", err.Error()))
	logger.LogEvent(context.Background(), logger.TWire, slog.LevelWarn, event, attrs...)
	return err
}

// RegisterCommand adds cmd under name ("/start") and indexes its aliases.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	attr := slog.String("name", name)
	if !strings.HasPrefix(name, "/") || len(name) < 2 || cmd.Handler == nil || cmd.Description == "" {
		return rejectRegistration("register.command.skip", fmt.Errorf("%w: %q", ErrInvalidCommand, name), attr)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.commands[name]; taken {
		return rejectRegistration("register.command.duplicate", fmt.Errorf("command %s: %w", name, ErrDuplicate), attr)
	}
	if _, taken := r.aliases[name]; taken {
		return rejectRegistration("register.command.duplicate", fmt.Errorf("command %s: %w", name, ErrDuplicate), attr)
	}
	for _, alias := range cmd.Aliases {
		key := "/" + strings.TrimPrefix(alias, "/")
		if _, taken := r.commands[key]; taken {
			return rejectRegistration("register.alias.duplicate", fmt.Errorf("alias %s: %w", key, ErrDuplicate), attr)
		}
		if _, taken := r.aliases[key]; taken {
			return rejectRegistration("register.alias.duplicate", fmt.Errorf("alias %s: %w", key, ErrDuplicate), attr)
		}
	}

	r.commands[name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases["/"+strings.TrimPrefix(alias, "/")] = name
	}
	return nil
}

// ListCommands returns the menu entries sorted by name. With visibleOnly,
// hidden and admin-only commands are left out.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]tele.Command, 0, len(r.commands))
	for name, meta := range r.commands {
		if visibleOnly && !meta.Visible() {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(name, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand resolves the first word of text, which may be an alias or
// carry a bot mention (/start@namebot), to its canonical command.
func (r *Registry) LookupCommand(text string) (string, commands.Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", commands.Command{}, false
	}
	name, _, _ := strings.Cut(fields[0], "@")
	name = "/" + strings.TrimPrefix(name, "/")

	r.mu.RLock()
	defer r.mu.RUnlock()
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.commands[name]
	if !ok {
		return "", commands.Command{}, false
	}
	return name, cmd, true
}

// Commands returns a copy of the registered commands keyed by name.
func (r *Registry) Commands() map[string]commands.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]commands.Command, len(r.commands))
	for name, cmd := range r.commands {
		out[name] = cmd
	}
	return out
}

// RegisterCallback maps a callback key to its handler.
func (r *Registry) RegisterCallback(key string, handler tele.HandlerFunc) error {
	attr := slog.String("cb_key", key)
	if key == "" || handler == nil {
		return rejectRegistration("register.callback.skip", ErrInvalidCallback, attr)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.callbacks[key]; taken {
		return rejectRegistration("register.callback.duplicate", fmt.Errorf("callback %s: %w", key, ErrDuplicate), attr)
	}
	r.callbacks[key] = handler
	return nil
}

// GetCallback returns the handler registered for key.
func (r *Registry) GetCallback(key string) (tele.HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.callbacks[key]
	return h, ok
}

// ListCallbacks returns the registered keys, sorted.
func (r *Registry) ListCallbacks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.callbacks))
	for k := range r.callbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetCallbackNotFound replaces the handler for callbacks without a route. Nil is ignored.
func (r *Registry) SetCallbackNotFound(h tele.HandlerFunc) {
	if h == nil {
		return
	}
	r.mu.Lock()
	r.callbackNotFound = h
	r.mu.Unlock()
}

// CallbackNotFound returns the handler for callbacks without a route.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.callbackNotFound
}

// SetTextFallback sets the handler for plain text that is not a command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.mu.Lock()
	r.textFallback = h
	r.mu.Unlock()
}

// TextFallback returns the plain text handler, nil if unset.
func (r *Registry) TextFallback() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.textFallback
}

// InitBotCommands publishes the visible commands as the Telegram command menu.
func InitBotCommands(bot *tele.Bot, reg *Registry) {
	if err := bot.SetCommands(reg.ListCommands(true)); err != nil {
		logger.LogEvent(context.Background(), logger.TWire, slog.LevelError, "register.commands.set_failed",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
}
