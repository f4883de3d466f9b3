package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/namebot/core/config"
	coretelegram "github.com/m3rciful/namebot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type app struct {
	started, stopped, closed bool
}

func (a *app) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStart: func(context.Context, coretelegram.Runtime) error { a.started = true; return nil },
		OnStop:  func(context.Context, coretelegram.Runtime) error { a.stopped = true; return nil },
	}, nil
}

func (a *app) Close() error { a.closed = true; return nil }

func TestRunLifecycle(t *testing.T) {
	a := &app{}
	var loadedFrom string
	err := Run(Options{
		ConfigPath: "config.yml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedFrom = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap:      func(context.Context, ConfigCarrier) (TelegramApp, error) { return a, nil },
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			require.NoError(t, opts.OnStart(ctx, coretelegram.Runtime{}))
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "config.yml", loadedFrom)
	assert.True(t, a.started)
	assert.True(t, a.stopped)
	assert.True(t, a.closed)
}

func TestRunFailures(t *testing.T) {
	assert.Error(t, Run(Options{}))

	boom := errors.New("boom")
	err := Run(Options{
		LoadConfig: func(string) (ConfigCarrier, error) { return nil, boom },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, nil },
	})
	assert.ErrorIs(t, err, boom)

	err = Run(Options{
		LoadConfig:     func(string) (ConfigCarrier, error) { return carrier{cfg: &coreconfig.Config{}}, nil },
		Bootstrap:      func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, boom },
		ShutdownLogger: func() error { return nil },
	})
	assert.ErrorIs(t, err, boom)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("NAMEBOT_CONFIG", "/etc/namebot.yml")
	assert.Equal(t, "/etc/namebot.yml", Options{ConfigEnvVar: "NAMEBOT_CONFIG"}.ResolveConfigPath())
	assert.Equal(t, "flag.yml", Options{ConfigPath: "flag.yml", ConfigEnvVar: "NAMEBOT_CONFIG"}.ResolveConfigPath())

	t.Setenv("CONFIG_PATH", "")
	assert.Empty(t, Options{}.ResolveConfigPath())
}
