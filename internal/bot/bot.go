// Package bot binds the conversation screens to Telegram commands, callbacks,
// free text and inline queries.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/namebot/core/logger"
	tg "github.com/m3rciful/namebot/core/telegram"
	"github.com/m3rciful/namebot/core/telegram/callbacks"
	"github.com/m3rciful/namebot/core/telegram/commands"
	tghelpers "github.com/m3rciful/namebot/core/telegram/helpers"
	"github.com/m3rciful/namebot/core/telegram/router"
	"github.com/m3rciful/namebot/core/telegram/ui"
	"github.com/m3rciful/namebot/internal/action"
	"github.com/m3rciful/namebot/internal/conversation"
	"github.com/m3rciful/namebot/internal/journal"

	tele "gopkg.in/telebot.v4"
)

const (
	statsLimit      = 10
	notAdminReply   = "⛔ This command is not available."
	unsupportedText = "Unsupported action"

	// Telegram caches inline answers for 300s when cache_time is omitted.
	inlineCacheTime = 1
)

// Stats reads usage statistics.
type Stats interface {
	TopLocales(ctx context.Context, limit int) ([]journal.LocaleCount, error)
}

// Handlers serves every update kind the bot understands.
type Handlers struct {
	screens *conversation.Dispatcher
	stats   Stats
}

// New returns Handlers for d. stats may be nil when no journal is configured.
func New(d *conversation.Dispatcher, stats Stats) *Handlers {
	return &Handlers{screens: d, stats: stats}
}

// CallbackKey routes raw callback data by token kind. Data that does not
// decode is reported as unroutable so the registry fallback answers it.
func CallbackKey(data string) (string, bool) {
	t, err := action.Decode(data)
	if err != nil {
		return "", false
	}
	return string(t.Kind), true
}

// Register adds commands, callbacks and the text fallback to reg.
func (h *Handlers) Register(reg *tg.Registry) error {
	cmds := []struct {
		name string
		cmd  commands.Command
	}{
		{"/start", commands.Command{
			Handler:     h.onStart,
			Description: "Start generating names",
			Aliases:     []string{"menu"},
		}},
		{"/help", commands.Command{
			Handler:     h.onHelp,
			Description: "How to use the bot",
		}},
		{"/stats", commands.Command{
			Handler:     h.onStats,
			Description: "Most requested countries",
			AdminOnly:   true,
			Hidden:      true,
		}},
	}
	for _, c := range cmds {
		if err := reg.RegisterCommand(c.name, c.cmd); err != nil {
			return fmt.Errorf("bot: register %s: %w", c.name, err)
		}
	}

	for kind, fn := range map[action.Kind]tele.HandlerFunc{
		action.KindPage:     h.onBrowse,
		action.KindLocale:   h.onBrowse,
		action.KindGenerate: h.onGenerate,
	} {
		if err := reg.RegisterCallback(string(kind), fn); err != nil {
			return fmt.Errorf("bot: register %s: %w", kind, err)
		}
	}
	reg.SetCallbackNotFound(h.onUnsupported)
	reg.SetTextFallback(h.onText)
	return nil
}

// Routes returns every route of the bot, with commands wrapped for adminID.
func (h *Handlers) Routes(reg *tg.Registry, adminID int64) []tg.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: adminID,
		OnAdminReject: func(c tele.Context) error {
			return tghelpers.SendText(c, notAdminReply)
		},
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{Key: CallbackKey}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)
	routes = append(routes, router.QueryRoute(h.onQuery))
	return routes
}

func (h *Handlers) onStart(c tele.Context) error {
	return show(c, h.screens.Welcome())
}

func (h *Handlers) onHelp(c tele.Context) error {
	return show(c, h.screens.Help())
}

func (h *Handlers) onStats(c tele.Context) error {
	if h.stats == nil {
		return show(c, h.screens.Stats(nil, false))
	}
	ctx := tghelpers.BuildContext(c)
	top, err := h.stats.TopLocales(ctx, statsLimit)
	if err != nil {
		return fmt.Errorf("bot: stats: %w", err)
	}
	rows := make([]conversation.LocaleCount, 0, len(top))
	for _, r := range top {
		rows = append(rows, conversation.LocaleCount{Locale: r.Locale, Count: r.Count})
	}
	return show(c, h.screens.Stats(rows, true))
}

// onBrowse serves PAGE and LOC: the pressed message is replaced in place.
func (h *Handlers) onBrowse(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	screen, err := h.screens.DispatchData(ctx, callbacks.Data(c))
	if err != nil {
		return h.apologize(c, err)
	}
	if err := tghelpers.Respond(c, ""); err != nil {
		logger.Debug(ctx, logger.ComponentConversation, "callback.answer",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}
	return show(c, screen)
}

// onGenerate serves GEN: the callback is acknowledged first and the names
// arrive as a new message.
func (h *Handlers) onGenerate(c tele.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = h.apologize(c, fmt.Errorf("panic: %v", r))
		}
	}()

	ctx := tghelpers.BuildContext(c)
	if err := tghelpers.Respond(c, conversation.ProcessingNotice); err != nil {
		logger.Debug(ctx, logger.ComponentConversation, "callback.answer",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
	}

	screen, err := h.screens.DispatchData(ctx, callbacks.Data(c))
	if err != nil {
		return h.apologize(c, err)
	}
	if err := show(c, screen); err != nil {
		return h.apologize(c, err)
	}
	return nil
}

// onUnsupported answers callback data that is not a valid token, e.g. a
// button from an older release.
func (h *Handlers) onUnsupported(c tele.Context) error {
	logger.Warn(tghelpers.BuildContext(c), logger.ComponentConversation, "token.unrecognized",
		slog.String("status", "skip"),
		slog.String("cb_key", logger.SanitizeLimit(callbacks.Key(c), 16)),
		slog.String("payload", logger.SanitizeLimit(callbacks.Payload(c), 64)),
	)
	return tghelpers.Respond(c, unsupportedText)
}

func (h *Handlers) onText(c tele.Context) error {
	return show(c, h.screens.SearchResults(c.Text()))
}

func (h *Handlers) onQuery(c tele.Context) error {
	q := c.Query()
	if q == nil {
		return nil
	}
	articles := h.screens.Inline(tghelpers.BuildContext(c), q.Text)

	results := make(tele.Results, 0, len(articles))
	for _, a := range articles {
		results = append(results, ui.NewArticleResult(a.ID, a.Title, a.Description, a.Text, tele.ModeMarkdown))
	}
	return tghelpers.AnswerQuery(c, &tele.QueryResponse{
		Results:    results,
		CacheTime:  inlineCacheTime,
		IsPersonal: true,
	})
}

// apologize tells the user something went wrong and returns cause for the
// handler summary. The cause itself is never shown.
func (h *Handlers) apologize(c tele.Context, cause error) error {
	ctx := tghelpers.BuildContext(c)
	logger.Error(ctx, logger.ComponentConversation, "dispatch.fail",
		slog.String("status", "fail"),
		slog.String("payload", logger.SanitizeLimit(callbacks.Data(c), 64)),
		slog.String("err", cause.Error()),
	)
	if err := show(c, conversation.Apology()); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// show sends fresh screens and edits the current message otherwise. An edit
// that changes nothing is not an error.
func show(c tele.Context, s conversation.Screen) error {
	var err error
	if s.Fresh {
		err = tghelpers.SendMD(c, s.Text, s.Markup())
	} else {
		err = tghelpers.EditOrSendMD(c, s.Text, s.Markup())
	}
	if errors.Is(err, tele.ErrMessageNotModified) {
		return nil
	}
	return err
}
