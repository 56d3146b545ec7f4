// Package editor launches the user's preferred text editor on a post.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/folio/internal/errors"
)

// ErrNoEditor indicates the editor command is empty after parsing.
var ErrNoEditor = errors.New("no editor configured")

// Editor runs an editor command attached to the given streams.
type Editor struct {
	// Command is the editor command line, e.g. "code --wait". Arguments
	// are split on whitespace; the file path is appended.
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns an Editor for the detected command attached to the process's
// standard streams.
func New() *Editor {
	return &Editor{
		Command: Detect(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Open runs the editor on path and waits for it to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return ErrNoEditor
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %q", fields[0])
	}
	return nil
}

// Detect returns the editor command to use.
// Fallback chain: $EDITOR → $VISUAL → nano → vi
func Detect() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
