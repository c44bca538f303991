package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/tinylog/internal/httpserver"
	"github.com/tinytelemetry/tinylog/internal/model"
	"github.com/tinytelemetry/tinylog/internal/webhook"
)

const (
	envPrefix             = "TINYLOG"
	defaultAPIAddr        = httpserver.DefaultAddr
	defaultLogLevel       = "info"
	defaultWebhookTimeout = webhook.DefaultTimeout
	defaultTCPType        = model.DefaultOptions
)

// Config keys that can also be given as command line flags.
var flagKeys = []string{"path", "webhook-url", "log-level", "api-addr", "tcp-addr"}

// appConfig is internal runtime configuration.
type appConfig struct {
	Path            string        `mapstructure:"path"`
	PathArgs        []string      `mapstructure:"path-args"`
	WebhookURL      string        `mapstructure:"webhook-url"`
	WebhookTemplate string        `mapstructure:"webhook-template"`
	WebhookTimeout  time.Duration `mapstructure:"webhook-timeout"`
	APIAddr         string        `mapstructure:"api-addr"`
	TCPAddr         string        `mapstructure:"tcp-addr"`
	TCPType         string        `mapstructure:"tcp-type"`
	LogLevel        string        `mapstructure:"log-level"`
	MetricsEnabled  bool          `mapstructure:"metrics-enabled"`
	ConfigPath      string        `mapstructure:"-"` // not from config file
}

// LogPath returns Path with PathArgs substituted into its %s verbs.
func (c appConfig) LogPath() string {
	if len(c.PathArgs) == 0 {
		return c.Path
	}
	args := make([]any, len(c.PathArgs))
	for i, a := range c.PathArgs {
		args[i] = a
	}
	return fmt.Sprintf(c.Path, args...)
}

// loadConfig merges defaults, the optional config file, TINYLOG_* environment
// variables and the flags of cmd, in increasing order of precedence.
func loadConfig(configPath string, cmd *cobra.Command) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("path", "")
	v.SetDefault("path-args", []string{})
	v.SetDefault("webhook-url", "")
	v.SetDefault("webhook-template", "")
	v.SetDefault("webhook-timeout", defaultWebhookTimeout)
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("tcp-addr", "")
	v.SetDefault("tcp-type", defaultTCPType)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("metrics-enabled", true)

	if cmd != nil {
		for _, key := range flagKeys {
			if f := cmd.Flags().Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "tinylog", "config.yml"))
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			// Only the default location may be absent.
			var configFileNotFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &configFileNotFound) || errors.Is(err, os.ErrNotExist)
			if configPath != "" || !missing {
				return cfg, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if _, err := os.Stat(v.ConfigFileUsed()); err == nil {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if _, _, err := net.SplitHostPort(cfg.APIAddr); err != nil {
		return cfg, fmt.Errorf("invalid api-addr %q: %w", cfg.APIAddr, err)
	}
	if cfg.TCPAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.TCPAddr); err != nil {
			return cfg, fmt.Errorf("invalid tcp-addr %q: %w", cfg.TCPAddr, err)
		}
	}
	if cfg.WebhookTimeout < 0 {
		return cfg, fmt.Errorf("invalid webhook-timeout: %s", cfg.WebhookTimeout)
	}

	if strings.HasPrefix(cfg.Path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Path = filepath.Join(home, cfg.Path[2:])
		}
	}

	return cfg, nil
}
