// Package app wires configuration, infrastructure and the bot handlers.
package app

import (
	"context"
	"fmt"

	"github.com/m3rciful/namebot/core/bootstrap"
	tg "github.com/m3rciful/namebot/core/telegram"
	"github.com/m3rciful/namebot/internal/bot"
	"github.com/m3rciful/namebot/internal/conversation"
	"github.com/m3rciful/namebot/internal/fakedata"
	"github.com/m3rciful/namebot/internal/journal"
	"github.com/m3rciful/namebot/internal/locales"
	"github.com/m3rciful/namebot/internal/names"
)

// App holds everything the running bot needs.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	registry *tg.Registry
	handlers *bot.Handlers
	recorder *journal.Recorder
}

// Bootstrap initializes logging and the optional journal database, then
// builds the bot.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	infra, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:     &cfg.Config,
		Database:   cfg.Database,
		Migrations: journal.Migrations(),
	})
	if err != nil {
		return nil, err
	}
	a, err := build(cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return a, nil
}

// NewGenerator returns the name generator configured by cfg.
func NewGenerator(cfg BotConfig) *names.Generator {
	return names.NewGenerator(fakedata.Default(), cfg.MaxAttempts)
}

func build(cfg *Config, infra *bootstrap.Result) (*App, error) {
	opts := conversation.Options{
		Registry: locales.Default(),
		Names:    NewGenerator(cfg.Bot),
		PageSize: cfg.Bot.PageSize,
	}

	var (
		stats    bot.Stats
		recorder *journal.Recorder
	)
	if infra != nil && infra.DB != nil {
		repo := journal.NewRepo(infra.DB)
		recorder = journal.NewRecorder(repo)
		opts.Recorder = recorder
		stats = repo
	}

	handlers := bot.New(conversation.New(opts), stats)
	reg := tg.NewRegistry()
	if err := handlers.Register(reg); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return &App{cfg: cfg, infra: infra, registry: reg, handlers: handlers, recorder: recorder}, nil
}

// TelegramRunOptions describes how the core runtime should start the bot.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a == nil || a.cfg == nil {
		return tg.RunOptions{}, fmt.Errorf("app: not bootstrapped")
	}
	return tg.RunOptions{
		Config:      &a.cfg.Config,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(),
		Routes:      a.handlers.Routes(a.registry, a.cfg.Telegram.AdminID),
	}, nil
}

// Close waits for queued journal writes, then releases the database pool, if any.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.recorder.Wait()
	return a.infra.Close()
}
