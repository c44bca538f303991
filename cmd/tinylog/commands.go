package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/tinylog/internal/linesource"
	"github.com/tinytelemetry/tinylog/internal/model"
)

func newWriteCmd(c *cli) *cobra.Command {
	var (
		typ    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "write <message...>",
		Short: "Append one record",
		Long: `Append one record built from the arguments joined by spaces.

Examples:
  tinylog write --path /var/log/app.log "Nice text is here" --type debug
  tinylog write --type "pos|warn" disk almost full
  tinylog write --json '{"user": 42, "roles": ["admin"]}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value any = strings.Join(args, " ")
			if asJSON {
				if err := json.Unmarshal([]byte(value.(string)), &value); err != nil {
					return fmt.Errorf("decoding --json message: %w", err)
				}
			}

			l, err := c.buildLogger()
			if err != nil {
				return err
			}
			return l.WriteContext(cmd.Context(), value, normalizeType(typ))
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", model.DefaultOptions, `options: a label and flags joined by "|", e.g. "pos|info"`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "decode the message as JSON and log the structured value")
	return cmd
}

func newPipeCmd(c *cli) *cobra.Command {
	var (
		typ         string
		maxLineSize int
	)

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Append one record per line read from stdin",
		Long: `Append one record per non-empty line read from stdin until EOF.

Example:
  ./deploy.sh 2>&1 | tinylog pipe --path /var/log/deploy.log --type info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.buildLogger()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			src := linesource.New(ctx, cmd.InOrStdin(), linesource.Config{MaxLineSize: maxLineSize})
			defer src.Stop()

			opts := normalizeType(typ)
			written := 0
			for line := range src.Lines() {
				if err := l.WriteContext(ctx, line, opts); err != nil {
					return fmt.Errorf("after %d records: %w", written, err)
				}
				written++
			}
			c.log.Debug("pipe finished", "records", written)
			return src.Err()
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", model.DefaultOptions, `options: a label and flags joined by "|"`)
	cmd.Flags().IntVar(&maxLineSize, "max-line-size", linesource.DefaultMaxLineSize, "longest accepted input line in bytes")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tinylog - Tiny File Logger\n")
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			fmt.Fprintf(out, "  Go version: %s\n", goVersion)
		},
	}
}
