package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"feedtochat/internal/feeds"
)

// newLatestCommand builds the "latest" subcommand: resolve a feed to its
// newest item, then run the normal pipeline on that item's URL.
func newLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest <feed-url>",
		Short: "Send the newest item of an RSS/Atom feed",
		Long: `Parse the feed, pick its newest item, and run the standard pipeline on
that item's URL. Useful when the reader macro passes the feed URL rather
than the selected item.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one feed URL argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			link, title, err := feeds.LatestItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			slog.Info("resolved newest feed item", "title", title, "url", link)
			return runSend(cmd.Context(), link)
		},
	}
}
