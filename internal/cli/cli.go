// Package cli is the namebot command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/m3rciful/namebot/core/buildinfo"
	corecmd "github.com/m3rciful/namebot/core/cmd"
	"github.com/m3rciful/namebot/internal/app"
	"github.com/m3rciful/namebot/internal/locales"
	"github.com/m3rciful/namebot/internal/names"
)

const (
	ConfigPathFlag      = "config"
	ConfigPathShortFlag = "c"
	ConfigPathUsage     = "Location of config file (default: $CONFIG_PATH, then environment only)"

	LocaleFlag      = "locale"
	LocaleShortFlag = "l"
	LocaleUsage     = "Locale id, e.g. fr_FR"

	GenderFlag         = "gender"
	GenderShortFlag    = "g"
	GenderDefaultValue = string(names.Any)
	GenderUsage        = "Gender of the names: male, female or any"

	MaxAttemptsFlag  = "max-attempts"
	MaxAttemptsUsage = "Draws allowed before giving up"
)

// Options holds the root command state.
type Options struct {
	ConfigPath string

	// Runner starts the bot. Defaults to the core runner.
	Runner func(corecmd.Options) error
}

// NewRootCommand creates the 'namebot' command. Without a subcommand it runs the bot.
func NewRootCommand(out io.Writer, opts *Options) *cobra.Command {
	if opts == nil {
		opts = &Options{}
	}

	cmd := &cobra.Command{
		Use:           "namebot [FLAGS] [COMMAND]",
		Short:         "Telegram bot that suggests names from countries around the world",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBot(opts)
		},
	}
	cmd.SetOut(out)
	setupFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newRunCommand(opts),
		newLocalesCommand(),
		newGenerateCommand(),
		newVersionCommand(),
	)
	return cmd
}

func setupFlags(flags *pflag.FlagSet, opts *Options) {
	flags.StringVarP(&opts.ConfigPath, ConfigPathFlag, ConfigPathShortFlag, "", ConfigPathUsage)
}

func newRunCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBot(opts)
		},
	}
}

func runBot(opts *Options) error {
	run := opts.Runner
	if run == nil {
		run = corecmd.Run
	}
	return run(corecmd.Options{
		ConfigPath: opts.ConfigPath,
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := app.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, errors.Errorf("unexpected config type %T", carrier)
			}
			a, err := app.Bootstrap(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	})
}

func newLocalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the supported countries and their locale ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "COUNTRY\tLOCALE")
			reg := locales.Default()
			for _, label := range reg.AllLabelsSorted() {
				locale, _ := reg.LocaleFor(label)
				_, _ = fmt.Fprintf(w, "%s\t%s\n", label, locale)
			}
			return w.Flush()
		},
	}
}

func newGenerateCommand() *cobra.Command {
	var (
		locale      string
		gender      string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print three names without starting the bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := names.ParseGender(gender)
			if err != nil {
				return errors.WithMessagef(err, "invalid --%s", GenderFlag)
			}
			if !locales.Default().Has(locale) {
				return errors.Errorf("unknown locale %q, see 'namebot locales'", locale)
			}

			gen := app.NewGenerator(app.BotConfig{MaxAttempts: maxAttempts})
			res := gen.GenerateDetailed(cmd.Context(), locale, g)
			for _, n := range res.Names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			if res.Failed() {
				return errors.WithMessage(res.Err, "generation failed")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&locale, LocaleFlag, LocaleShortFlag, "", LocaleUsage)
	flags.StringVarP(&gender, GenderFlag, GenderShortFlag, GenderDefaultValue, GenderUsage)
	flags.IntVar(&maxAttempts, MaxAttemptsFlag, names.DefaultMaxAttempts, MaxAttemptsUsage)
	_ = cmd.MarkFlagRequired(LocaleFlag)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show namebot version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "namebot "+buildinfo.String())
		},
	}
}
