// Package clipboard writes text to the system clipboard through the first
// available platform utility. It is best-effort by contract: callers treat
// any error here as a warning, never as a reason to abort.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// utilities are tried in priority order: the macOS native tool first, then
// the two X11 selection tools.
var utilities = []struct {
	name string
	args []string
}{
	{"pbcopy", nil},
	{"xclip", []string{"-selection", "clipboard"}},
	{"xsel", []string{"--clipboard", "--input"}},
}

// ErrNoUtility is returned when none of the known clipboard utilities is
// installed.
var ErrNoUtility = errors.New("no clipboard utility found (install xclip or xsel)")

// lookPath is swapped in tests to fake utility presence.
var lookPath = exec.LookPath

// Write puts text on the system clipboard, piped over stdin to the first
// utility found.
func Write(text string) error {
	cmd, err := command()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", cmd.Args[0], err)
	}
	return nil
}

func command() (*exec.Cmd, error) {
	for _, u := range utilities {
		if path, err := lookPath(u.name); err == nil {
			return exec.Command(path, u.args...), nil
		}
	}
	return nil, ErrNoUtility
}
