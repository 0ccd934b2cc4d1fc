package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// dumpTools are the external page-dump programs tried for article URLs, in
// priority order. The first one present on PATH wins.
var dumpTools = []struct {
	name string
	args []string
}{
	{"lynx", []string{"-dump", "-nolist"}},
	{"w3m", []string{"-dump"}},
}

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; feedtochat/1.0)")
}

// Article returns the readable text of a web page. An external dump tool is
// preferred when installed; otherwise the page is fetched natively and run
// through readability, with a raw tag-stripping pass as the last resort.
// A dump tool that is present but fails is an error, not a fallthrough.
func (e *Extractor) Article(ctx context.Context, pageURL string) (string, error) {
	for _, tool := range dumpTools {
		path, err := e.runner.LookPath(tool.name)
		if err != nil {
			continue
		}
		slog.Debug("dumping article via external tool", "tool", tool.name, "url", pageURL)
		out, err := e.runner.Output(ctx, nil, path, append(tool.args, pageURL)...)
		if err != nil {
			return "", fmt.Errorf("dumping %q via %s: %w", pageURL, tool.name, err)
		}
		return string(out), nil
	}

	slog.Debug("no dump tool installed, extracting natively", "url", pageURL)
	article, err := readability.FromURL(pageURL, e.timeout, browserHeaders)
	if err == nil {
		return article.TextContent, nil
	}
	slog.Debug("readability extraction failed, falling back to raw fetch", "error", err)

	return e.rawFetch(ctx, pageURL)
}

// rawFetch downloads the page and flattens it to text: tags dropped, blank
// lines removed. Crude, but it always produces something to summarize.
func (e *Extractor) rawFetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %q: %w", pageURL, err)
	}
	browserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %q: HTTP %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body from %q: %w", pageURL, err)
	}

	return flattenHTML(string(body)), nil
}

// flattenHTML reduces an HTML document to its visible text. Script and
// style bodies are skipped; everything else keeps its text nodes, one
// trimmed line each, blank lines dropped.
func flattenHTML(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		// html.Parse almost never fails, but a regex strip still beats
		// handing raw markup to a chat window.
		return dropBlankLines(htmlTagPattern.ReplaceAllString(body, ""))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}

// dropBlankLines removes empty and whitespace-only lines.
func dropBlankLines(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			b.WriteString(trimmed)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
