package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/linkdump/internal/config"
	"github.com/amosWeiskopf/linkdump/internal/logger"
	"github.com/amosWeiskopf/linkdump/pkg/crawler"
	"github.com/amosWeiskopf/linkdump/pkg/reporter"
	"github.com/amosWeiskopf/linkdump/pkg/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linkdump",
		Short: "linkdump - save every link on a web page to a file",
		Long: `linkdump prompts for a domain, fetches that single page, resolves every
anchor href to an absolute URL and writes the unique set to urls_<domain>.txt.
Type 'e' at the prompt to quit.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = zerolog.DebugLevel.String()
			}

			log, closer, err := logger.New(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer closer.Close()

			c := crawler.New(
				crawler.WithLogger(log),
				crawler.WithTimeout(cfg.HTTP.Timeout),
				crawler.WithUserAgent(cfg.HTTP.UserAgent),
			)
			r := reporter.New(cfg.Output, log)

			return session.New(in, out, c, r, log).Run(cmd.Context())
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	// Global flags
	rootCmd.Flags().String("config", "", "Config file path")
	rootCmd.Flags().Bool("verbose", false, "Enable debug logging")
	rootCmd.Flags().String("output-dir", ".", "Directory the URL files are written to")
	rootCmd.Flags().String("format", reporter.FormatText, "Output format (text, json)")
	rootCmd.Flags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")

	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
