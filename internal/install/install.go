// Package install wires feedtochat into a newsboat setup: it writes the
// default config and inserts one macro line into the reader's own config so
// a keypress sends the selected item's URL to this tool.
//
// The only byte ever touched in the user's reader config is that single
// marked line, and every edit is preceded by a timestamped backup.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"feedtochat/internal/config"
)

// macroMarker tags the inserted line so install stays idempotent and
// uninstall removes exactly what install added.
const macroMarker = "# feedtochat macro"

// Options parameterizes an install or uninstall run.
type Options struct {
	// ConfigPath is where the feedtochat config lives.
	ConfigPath string

	// ReaderConfig is the newsboat config file to edit.
	ReaderConfig string

	// Binary is the command inserted into the macro; usually the absolute
	// path of the running executable.
	Binary string

	// HistoryPath is the dispatch log removed on uninstall.
	HistoryPath string
}

// DefaultReaderConfig returns the likely newsboat config location,
// preferring ~/.newsboat/config when it exists over the XDG path.
func DefaultReaderConfig() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	classic := filepath.Join(home, ".newsboat", "config")
	if _, err := os.Stat(classic); err == nil {
		return classic, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, "newsboat", "config"), nil
}

// macroLine builds the newsboat macro: press ,a on a selected item to run
// feedtochat with the item's URL, then restore the normal browser.
func macroLine(binary string) string {
	return fmt.Sprintf(`macro a set browser "%s %%u" ; open-in-browser ; set browser "%s %%u" %s`,
		binary, config.DefaultBrowserCmd(), macroMarker)
}

// Install writes the default feedtochat config (skipped when one exists) and
// appends the macro line to the reader config, backing the latter up first.
// Running it twice is a no-op.
func Install(opts Options) error {
	if err := config.WriteDefault(opts.ConfigPath); err != nil {
		return err
	}
	slog.Info("feedtochat config in place", "path", opts.ConfigPath)

	data, err := os.ReadFile(opts.ReaderConfig)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("feed reader config not found at %q: is newsboat set up?", opts.ReaderConfig)
	}
	if err != nil {
		return fmt.Errorf("reading reader config: %w", err)
	}

	if strings.Contains(string(data), macroMarker) {
		slog.Info("macro already installed, nothing to do", "path", opts.ReaderConfig)
		return nil
	}

	backupPath, err := backup(opts.ReaderConfig, data)
	if err != nil {
		return err
	}
	slog.Info("backed up reader config", "path", backupPath)

	content := string(data)
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}
	content += macroLine(opts.Binary) + "\n"

	if err := os.WriteFile(opts.ReaderConfig, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing reader config: %w", err)
	}
	slog.Info("installed macro", "path", opts.ReaderConfig, "key", ",a")
	return nil
}

// Uninstall removes the macro line (backing the reader config up first) and
// deletes the history database and any leftover temp files. Config removal
// is left to the user; their edits survive.
func Uninstall(opts Options) error {
	data, err := os.ReadFile(opts.ReaderConfig)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("reader config not found, skipping macro removal", "path", opts.ReaderConfig)
	case err != nil:
		return fmt.Errorf("reading reader config: %w", err)
	case strings.Contains(string(data), macroMarker):
		backupPath, err := backup(opts.ReaderConfig, data)
		if err != nil {
			return err
		}
		slog.Info("backed up reader config", "path", backupPath)

		var kept []string
		for _, line := range strings.Split(string(data), "\n") {
			if strings.Contains(line, macroMarker) {
				continue
			}
			kept = append(kept, line)
		}
		if err := os.WriteFile(opts.ReaderConfig, []byte(strings.Join(kept, "\n")), 0o644); err != nil {
			return fmt.Errorf("writing reader config: %w", err)
		}
		slog.Info("removed macro", "path", opts.ReaderConfig)
	default:
		slog.Info("macro not present, nothing to remove", "path", opts.ReaderConfig)
	}

	removeArtifacts(opts.HistoryPath)
	return nil
}

// backup copies the given content next to the original with a timestamped
// suffix, so a bad edit is always one rename away from undone.
func backup(path string, data []byte) (string, error) {
	backupPath := fmt.Sprintf("%s.backup-%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("backing up %q: %w", path, err)
	}
	return backupPath, nil
}

// removeArtifacts deletes the history database (including SQLite sidecars)
// and stray feedtochat temp files. Failures are logged, not fatal: uninstall
// should finish even on a half-broken setup.
func removeArtifacts(historyPath string) {
	if historyPath != "" {
		for _, p := range []string{historyPath, historyPath + "-wal", historyPath + "-shm"} {
			if err := os.Remove(p); err == nil {
				slog.Info("removed", "path", p)
			} else if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("could not remove", "path", p, "error", err)
			}
		}
	}

	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "feedtochat-*"))
	if err != nil {
		return
	}
	for _, p := range matches {
		if err := os.Remove(p); err == nil {
			slog.Info("removed temp file", "path", p)
		}
	}
}
