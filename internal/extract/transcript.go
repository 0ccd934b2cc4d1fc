package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// transcriptTool is the CLI shipped with the youtube-transcript-api Python
// package. It takes a video ID and emits the transcript on stdout.
const transcriptTool = "youtube_transcript_api"

// localBinDirs are probed when the transcript tool is not on PATH. pip
// --user installs land in ~/.local/bin, which login shells often have but
// feed-reader macros usually do not. Overridden in tests.
var localBinDirs = defaultLocalBinDirs()

func defaultLocalBinDirs() []string {
	dirs := []string{"/usr/local/bin", "/opt/homebrew/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, ".local", "bin")}, dirs...)
	}
	return dirs
}

// Transcript fetches the plain-text transcript for a video ID by invoking
// the external transcript tool. Returns ErrToolNotFound when the tool is
// absent from PATH and the probed local install directories.
func (e *Extractor) Transcript(ctx context.Context, videoID string) (string, error) {
	toolPath, env, err := e.resolveTranscriptTool()
	if err != nil {
		return "", err
	}

	slog.Debug("running transcript tool", "tool", toolPath, "video_id", videoID)
	out, err := e.runner.Output(ctx, env, toolPath, videoID, "--format", "text")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("fetching transcript for %q: %s", videoID, firstLine(exitErr.Stderr))
		}
		return "", fmt.Errorf("fetching transcript for %q: %w", videoID, err)
	}
	return string(out), nil
}

// resolveTranscriptTool finds the transcript tool on PATH or in the local
// install directories. When found off-PATH, the returned env carries an
// augmented PATH so any interpreter shims the tool spawns resolve too.
func (e *Extractor) resolveTranscriptTool() (toolPath string, env []string, err error) {
	if p, err := e.runner.LookPath(transcriptTool); err == nil {
		return p, nil, nil
	}

	for _, dir := range localBinDirs {
		candidate := filepath.Join(dir, transcriptTool)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			env = append(os.Environ(), "PATH="+dir+string(os.PathListSeparator)+os.Getenv("PATH"))
			slog.Debug("found transcript tool outside PATH", "path", candidate)
			return candidate, env, nil
		}
	}

	return "", nil, fmt.Errorf("%w: %s (install with: pip install youtube-transcript-api)",
		ErrToolNotFound, transcriptTool)
}

// firstLine trims tool stderr down to a single diagnostic line.
func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
