// Package feeds resolves an RSS or Atom feed to its newest item, for
// readers whose macro hands over the feed URL instead of the item URL.
package feeds

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// LatestItem parses the feed and returns the link and title of its newest
// item. Items without a link are skipped; when publication dates are
// missing, feed order decides (most feeds list newest first).
func LatestItem(ctx context.Context, feedURL string) (link, title string, err error) {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (compatible; feedtochat/1.0)"

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", "", fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}

	var best *gofeed.Item
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		if best == nil {
			best = item
			continue
		}
		if item.PublishedParsed != nil &&
			(best.PublishedParsed == nil || item.PublishedParsed.After(*best.PublishedParsed)) {
			best = item
		}
	}
	if best == nil {
		return "", "", fmt.Errorf("feed %q has no items with links", feedURL)
	}
	return best.Link, best.Title, nil
}
