package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/namebot/core/buildinfo"
	corecmd "github.com/m3rciful/namebot/core/cmd"
	coreconfig "github.com/m3rciful/namebot/core/config"
	"github.com/m3rciful/namebot/internal/names"
)

func execute(t *testing.T, opts *Options, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := NewRootCommand(out, opts)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "namebot "+buildinfo.String(), strings.TrimSpace(out))
}

func TestLocalesCommand(t *testing.T) {
	out, err := execute(t, nil, "locales")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 74)
	assert.Equal(t, []string{"COUNTRY", "LOCALE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"France", "fr_FR"}, strings.Fields(findLine(lines, "France")))
}

func findLine(lines []string, prefix string) string {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix+" ") {
			return l
		}
	}
	return ""
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, nil, "generate", "--locale", "fr_FR", "-g", "female")
	require.NoError(t, err)

	got := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, got, 3)
	assert.NotEqual(t, got[0], got[1])
	assert.NotEqual(t, got[1], got[2])
	assert.NotEqual(t, got[0], got[2])
	assert.NotContains(t, got, names.Sentinel[0])
}

func TestGenerateCommandErrors(t *testing.T) {
	_, err := execute(t, nil, "generate")
	require.ErrorContains(t, err, `required flag(s) "locale" not set`)

	_, err = execute(t, nil, "generate", "-l", "fr_FR", "-g", "robot")
	require.ErrorContains(t, err, "invalid --gender")

	_, err = execute(t, nil, "generate", "-l", "xx_XX")
	require.ErrorContains(t, err, `unknown locale "xx_XX"`)
}

func TestRunPassesConfigPath(t *testing.T) {
	for _, args := range [][]string{
		{"--config", "bot.yml"},
		{"run", "-c", "bot.yml"},
	} {
		var got corecmd.Options
		opts := &Options{Runner: func(o corecmd.Options) error {
			got = o
			return nil
		}}
		_, err := execute(t, opts, args...)
		require.NoError(t, err, args)
		assert.Equal(t, "bot.yml", got.ConfigPath)
		require.NotNil(t, got.LoadConfig)
		require.NotNil(t, got.Bootstrap)
	}
}

type foreignConfig struct{}

func (foreignConfig) CoreConfig() *coreconfig.Config { return &coreconfig.Config{} }

func TestRunRejectsForeignConfig(t *testing.T) {
	var got corecmd.Options
	opts := &Options{Runner: func(o corecmd.Options) error { got = o; return nil }}
	_, err := execute(t, opts)
	require.NoError(t, err)

	_, err = got.Bootstrap(context.Background(), foreignConfig{})
	require.ErrorContains(t, err, "unexpected config type")

	t.Setenv("BOT_TOKEN", "YOUR_BOT_TOKEN")
	_, err = got.LoadConfig("")
	require.ErrorIs(t, err, coreconfig.ErrMissingToken)
}
