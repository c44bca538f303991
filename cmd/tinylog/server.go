package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/tinylog"
	"github.com/tinytelemetry/tinylog/internal/httpserver"
	"github.com/tinytelemetry/tinylog/internal/logfile"
	"github.com/tinytelemetry/tinylog/internal/metrics"
	"github.com/tinytelemetry/tinylog/internal/tcpserver"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept records over HTTP",
		Long: `Serve the HTTP ingest API:

  POST /api/log     {"value": <any JSON>, "options": "pos|info"}
  GET  /api/health
  GET  /metrics     (when metrics-enabled)

With --tcp-addr, every line received over TCP is appended as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.runServer(ctx, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("api-addr", defaultAPIAddr, "listen address of the HTTP API")
	cmd.Flags().String("tcp-addr", "", "listen address for newline-delimited records over TCP (disabled when empty)")
	return cmd
}

// runServer serves the HTTP API until ctx is done.
func (c *cli) runServer(ctx context.Context, out io.Writer) error {
	var (
		m    *metrics.Metrics
		opts []tinylog.Option
	)
	if c.cfg.MetricsEnabled {
		m = metrics.New()
		opts = append(opts, tinylog.WithRecorder(m))
	}

	l, err := c.buildLogger(opts...)
	if err != nil {
		return err
	}

	// The log file must be writable before the API accepts requests.
	if err := logfile.Touch(l.Path()); err != nil {
		return fmt.Errorf("preparing log file: %w", err)
	}

	srvCfg := httpserver.Config{Addr: c.cfg.APIAddr, Logger: c.log}
	if m != nil {
		srvCfg.Metrics = m.Handler()
	}
	apiServer := httpserver.NewServer(srvCfg, l)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	var tcp *tcpserver.Server
	if c.cfg.TCPAddr != "" {
		tcp = tcpserver.NewServer(c.cfg.TCPAddr, tcpserver.ServerConfig{Logger: c.log})
		if err := tcp.Start(); err != nil {
			_ = apiServer.Stop()
			return fmt.Errorf("failed to start TCP ingest: %w", err)
		}
	}

	printStartupBanner(out, c.cfg, l, apiServer.Addr(), tcp)

	g, gctx := errgroup.WithContext(ctx)

	if tcp != nil {
		opts := normalizeType(c.cfg.TCPType)
		g.Go(func() error {
			for line := range tcp.Lines() {
				if err := l.WriteContext(context.WithoutCancel(gctx), line, opts); err != nil {
					c.log.Error("tcp ingest: write failed", "error", err)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(out, "\nShutting down gracefully...")
		err := apiServer.Stop()
		if tcp != nil {
			_ = tcp.Stop()
		}
		return err
	})

	if err := g.Wait(); err != nil {
		c.log.Error("server: shutdown failed", "error", err)
		return err
	}
	return nil
}

func printStartupBanner(out io.Writer, cfg appConfig, l *tinylog.Logger, addr string, tcp *tcpserver.Server) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	lines := []string{
		"",
		cyan.Bold(true).Render("    tinylog"),
		"    " + dim.Render("v"+version),
		"",
	}

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator, "", bold.Render("    Gateway"), "")
	lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(addr)))
	if tcp != nil {
		lines = append(lines, fmt.Sprintf("    %s  TCP Ingest     %s", check, cyan.Render(tcp.Addr())))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  TCP Ingest     %s", dot, dim.Render("disabled")))
	}
	if cfg.MetricsEnabled {
		lines = append(lines, fmt.Sprintf("    %s  Metrics        %s", check, cyan.Render(addr+"/metrics")))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Metrics        %s", dot, dim.Render("disabled")))
	}

	lines = append(lines, "", bold.Render("    Output"), "")
	lines = append(lines, fmt.Sprintf("    %s  Log File       %s", check, dim.Render(shortenPath(l.Path()))))
	if l.WebhookEnabled() {
		lines = append(lines, fmt.Sprintf("    %s  Webhook        %s", check, dim.Render(cfg.WebhookURL)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Webhook        %s", dot, dim.Render("disabled")))
	}

	lines = append(lines, "", bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
