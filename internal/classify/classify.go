// Package classify decides whether an input URL points at a YouTube video
// and, when it does, pulls out the video identifier.
package classify

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	watchURLPattern = regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch`)
	shortURLPattern = regexp.MustCompile(`^https?://youtu\.be/`)

	// Video IDs are taken permissively: any run of characters up to the
	// next query delimiter counts. YouTube's exact ID grammar is their
	// business, not ours.
	watchIDPattern = regexp.MustCompile(`[?&]v=([^&]+)`)
	shortIDPattern = regexp.MustCompile(`youtu\.be/([^?]+)`)
)

// ErrNoVideoID is returned when a URL looks like a YouTube URL but carries
// no extractable video identifier.
var ErrNoVideoID = errors.New("no video id in url")

// IsVideoURL reports whether the URL refers to a YouTube video, either via
// the full watch URL or the youtu.be short form.
func IsVideoURL(rawURL string) bool {
	return watchURLPattern.MatchString(rawURL) || shortURLPattern.MatchString(rawURL)
}

// ExtractVideoID returns the video identifier from a YouTube URL. Two
// patterns are tried in order: the v= query parameter, then the youtu.be
// path segment. The first match wins.
func ExtractVideoID(rawURL string) (string, error) {
	if m := watchIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	if m := shortIDPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("%w: %q", ErrNoVideoID, rawURL)
}
