package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"todopanel/internal/ports"
)

// Opener implements ports.LocatorOpener
type Opener struct{}

// Ensure Opener implements LocatorOpener
var _ ports.LocatorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.LocatorCommand(path, 0)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// LocatorCommand returns an exec.Cmd that opens path at the given
// line, for editors that understand +line. This is useful for
// integrating with bubbletea's ExecProcess.
func (o *Opener) LocatorCommand(path string, line int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := []string{path}
	if line > 0 && supportsLineFlag(editor) {
		// Notebook scanner lines are zero-based; editors count from 1.
		args = []string{fmt.Sprintf("+%d", line+1), path}
	}

	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// supportsLineFlag reports whether the editor accepts a +line argument.
func supportsLineFlag(editor string) bool {
	switch strings.TrimSuffix(filepath.Base(editor), ".exe") {
	case "nvim", "vim", "vi", "nano", "emacs":
		return true
	default:
		return false
	}
}
