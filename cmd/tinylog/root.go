package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/tinylog"
	"github.com/tinytelemetry/tinylog/internal/options"
	"github.com/tinytelemetry/tinylog/internal/severity"
	"github.com/tinytelemetry/tinylog/internal/webhook"
)

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	configPath string
	cfg        appConfig
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "tinylog",
		Short: "Append human readable records to a log file",
		Long: `tinylog appends timestamped, labelled records to a text file and can
notify a webhook about every record it writes.

Configuration is read from $HOME/.config/tinylog/config.yml (or --config),
TINYLOG_* environment variables and command line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(c.configPath, cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			c.cfg = cfg
			c.log = newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is $HOME/.config/tinylog/config.yml)")
	root.PersistentFlags().String("path", "", "log file to append to")
	root.PersistentFlags().String("webhook-url", "", "URL notified about every record")
	root.PersistentFlags().String("log-level", defaultLogLevel, "diagnostics level: debug, info, warn, error")

	root.AddCommand(
		newWriteCmd(c),
		newPipeCmd(c),
		newServeCmd(c),
		newVersionCmd(),
	)
	return root
}

// buildLogger builds a Logger from the loaded configuration.
func (c *cli) buildLogger(opts ...tinylog.Option) (*tinylog.Logger, error) {
	opts = append([]tinylog.Option{tinylog.WithLogger(c.log)}, opts...)
	l := tinylog.New(tinylog.Config{
		Path:           c.cfg.LogPath(),
		WebhookTimeout: c.cfg.WebhookTimeout,
	}, opts...)

	if c.cfg.WebhookURL != "" {
		var template map[string]any
		if c.cfg.WebhookTemplate != "" {
			t, err := webhook.LoadTemplate(c.cfg.WebhookTemplate)
			if err != nil {
				return nil, err
			}
			template = t
		}
		l.EnableWebhook(c.cfg.WebhookURL, template)
	}
	return l, nil
}

// normalizeType parses an option string, rewrites a severity alias such as
// "warn" or "crit" to its canonical name and renders it back. Custom labels
// are kept verbatim.
func normalizeType(input string) string {
	parsed := options.Parse(input)
	label := parsed.Label
	if name := severity.Normalize(label); severity.Known(name) {
		label = name
	}
	return options.Join(label, parsed.Flags()...)
}
