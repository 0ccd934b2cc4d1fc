// Package dispatch maps a configured provider name to its chat URL and
// opens it in a browser. The browser launch is the primary deliverable of a
// run: if it fails the user has no way to paste the extracted content, so a
// launch failure is always fatal.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// providerURLs is the static provider registry. Adding a provider means
// adding a line here, nothing else.
var providerURLs = map[string]string{
	"claude":  "https://claude.ai/chat",
	"chatgpt": "https://chat.openai.com/",
	"grok":    "https://x.ai/grok",
}

// ErrUnknownProvider is returned for provider names outside the registry.
var ErrUnknownProvider = errors.New("unknown chat provider")

// runCommand is swapped in tests to avoid launching a real browser.
var runCommand = func(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// ProviderURL resolves a provider name to its chat URL.
func ProviderURL(name string) (string, error) {
	url, ok := providerURLs[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownProvider, name,
			strings.Join(Providers(), ", "))
	}
	return url, nil
}

// Providers returns the supported provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providerURLs))
	for name := range providerURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Launch opens the URL with the configured browser command. The command
// string may carry its own arguments; the URL is appended last. The call
// blocks until the command exits, and a non-zero exit is an error.
func Launch(ctx context.Context, browserCmd, url string) error {
	fields := strings.Fields(browserCmd)
	if len(fields) == 0 {
		return errors.New("browser command is empty")
	}
	args := append(fields[1:], url)
	if err := runCommand(ctx, fields[0], args...); err != nil {
		return fmt.Errorf("launching browser %q: %w", browserCmd, err)
	}
	return nil
}
