// Package cli defines the cobra commands for feedtochat. The root command
// runs the full pipeline on one URL; subcommands cover feed resolution,
// history and reader integration.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"feedtochat/internal/config"
	"feedtochat/internal/history"
	"feedtochat/internal/pipeline"
)

// Version is the binary version, injected at build time via ldflags.
var Version = "dev"

// Flag values bound on the root command and inherited by subcommands.
var (
	configPath     string
	verbose        bool
	promptOverride string
)

// NewRootCommand builds the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "feedtochat <url>",
		Short: "Send an article or video transcript to an AI chat",
		Long: `feedtochat takes one URL, extracts its readable text (article body or
YouTube transcript), prepends a summarization prompt, copies the result to
the clipboard, and opens your configured AI chat provider in a browser.

It is meant to be bound to a feed reader macro that passes the selected
item's URL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one URL argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), args[0])
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: the user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&promptOverride, "prompt", "p", "", "one-shot prompt override")

	root.AddCommand(newLatestCommand())
	root.AddCommand(newHistoryCommand())
	root.AddCommand(newInstallCommand())
	root.AddCommand(newUninstallCommand())

	return root
}

// Execute runs the CLI. All diagnostics, including the final fatal one,
// go to stderr; the exit code is the caller's job.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// setupLogging points slog at stderr with a timestamped text handler.
// Stdout stays reserved for the completion notice and table output.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// runSend executes the pipeline for one URL and prints the completion
// notice. Shared by the root command and "latest".
func runSend(ctx context.Context, rawURL string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if promptOverride != "" {
		cfg.CustomPrompt = promptOverride
	}

	res, err := pipeline.New(cfg).Run(ctx, rawURL)
	if err != nil {
		return err
	}

	recordHistory(ctx, cfg, res)

	if res.ClipboardOK {
		fmt.Printf("Copied %d characters of %s content to the clipboard and opened %s. Paste away.\n",
			res.Chars, res.Kind, res.ChatURL)
	} else {
		fmt.Printf("Opened %s for %s content (%d characters); the clipboard was unavailable.\n",
			res.ChatURL, res.Kind, res.Chars)
	}
	return nil
}

// loadConfig loads the config from --config or the default location.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

// recordHistory appends the run to the dispatch log. Best-effort: the
// dispatch already happened, so nothing here may fail the run.
func recordHistory(ctx context.Context, cfg *config.Config, res *pipeline.Result) {
	if !cfg.History || cfg.HistoryPath == "" {
		return
	}
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		slog.Warn("history log unavailable", "error", err)
		return
	}
	defer store.Close()

	err = store.Record(ctx, history.Entry{
		URL:       res.URL,
		Kind:      string(res.Kind),
		VideoID:   res.VideoID,
		Provider:  res.Provider,
		Chars:     res.Chars,
		Clipboard: res.ClipboardOK,
	})
	if err != nil {
		slog.Warn("could not record dispatch", "error", err)
	}
}
