// Package main implements projectsctl, a CLI for checking projects CSV documents
// and the sources the server loads them from.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/portfolio/internal/config"
	"github.com/JonMunkholm/portfolio/internal/feed"
	"github.com/JonMunkholm/portfolio/internal/logging"
	"github.com/JonMunkholm/portfolio/internal/projects"
)

// version information
var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the persistent flags shared by all commands.
type options struct {
	charset  string
	maxBytes int64
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "projectsctl",
		Short: "Inspect projects CSV documents and sources",
		Long: `projectsctl runs the same tokenizer, mapper and loader as the server,
so a sheet can be checked before it is published.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, "text"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.charset, "charset", envOr("PROJECTS_CSV_CHARSET", feed.DefaultCharset), "document charset: utf-8, windows-1252, iso-8859-1")
	rootCmd.PersistentFlags().Int64Var(&opts.maxBytes, "max-bytes", feed.DefaultMaxBytes, "maximum document size in bytes")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "fetch timeout (0 for none)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newRowsCmd(opts),
		newStacksCmd(opts),
		newFetchCmd(opts),
	)
	return rootCmd
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a CSV document and print the project records as JSON",
		Long: `Parse a CSV document and print the project records as JSON.

Examples:
  # Parse a file
  projectsctl parse data/projects.csv

  # Parse from stdin
  curl -s "$SHEET_URL" | projectsctl parse -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), projects.Parse(text))
		},
	}
}

func newRowsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rows [file|-]",
		Short: "Print the tokenized rows as JSON",
		Long: `Print the raw rows the tokenizer produces, before header mapping.
Useful for checking quoting and line endings in an exported sheet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), projects.Tokenize(text))
		},
	}
}

// StacksOutput is printed by the stacks command.
type StacksOutput struct {
	Stacks     []string `json:"stacks"`
	Records    int      `json:"records"`
	TotalHours float64  `json:"totalHours"`
}

func newStacksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stacks [file|-]",
		Short: "Print the sorted distinct stacks and total hours",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, opts)
			if err != nil {
				return err
			}
			records := projects.Parse(text)
			return printJSON(cmd.OutOrStdout(), StacksOutput{
				Stacks:     projects.Stacks(records),
				Records:    len(records),
				TotalHours: projects.TotalHours(records),
			})
		},
	}
}

// FetchOutput is printed by the fetch command.
type FetchOutput struct {
	Source   string             `json:"source"`
	Outcome  string             `json:"outcome"`
	Records  []projects.Project `json:"records,omitempty"`
	Error    string             `json:"error,omitempty"`
	Code     string             `json:"code,omitempty"`
	Duration string             `json:"duration"`
}

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [location]",
		Short: "Run one load cycle against a source and print the outcome",
		Long: `Run one load cycle against a source and print the outcome.
Exits non-zero when the load fails.

The location defaults to PROJECTS_CSV_URL (or VITE_PROJECTS_CSV_URL).

Examples:
  # Check the configured source
  projectsctl fetch

  # Check a published sheet
  projectsctl fetch "https://docs.google.com/spreadsheets/d/e/.../pub?output=csv"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) == 1 {
				location = args[0]
			} else {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				location = cfg.Source.URL
			}

			src, err := feed.NewSource(location, nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if opts.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.timeout)
				defer cancel()
			}

			slog.Info("fetching", "source", src.Location())
			start := time.Now()
			outcome := feed.Load(ctx, src, feed.LoadOptions{Charset: opts.charset, MaxBytes: opts.maxBytes})

			out := FetchOutput{
				Source:   src.Location(),
				Outcome:  feed.OutcomeLabel(outcome),
				Duration: time.Since(start).Round(time.Millisecond).String(),
			}

			var loadErr error
			switch o := outcome.(type) {
			case feed.Loaded:
				out.Records = o.Records
			case feed.Failed:
				msg := feed.MapError(o.Err)
				out.Error = o.Err.Error()
				out.Code = msg.Code
				loadErr = fmt.Errorf("load failed: %s", msg)
			}

			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return loadErr
		},
	}
}

// readInput reads a file, or stdin for "-" or no argument, and decodes it.
func readInput(cmd *cobra.Command, args []string, opts *options) (string, error) {
	var content []byte
	var err error

	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	}

	r, err := feed.Decode(bytes.NewReader(content), opts.charset)
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode input: %w", err)
	}
	return string(text), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
