package ports

import "os/exec"

// LocatorOpener opens a notebook todo's origin file in an external
// editor, positioned at the marker line when the editor supports it.
type LocatorOpener interface {
	// OpenFile opens the file and blocks until the editor exits.
	OpenFile(path string) error

	// LocatorCommand returns an exec.Cmd for opening path at line.
	// This is useful for integrating with bubbletea's ExecProcess.
	LocatorCommand(path string, line int) (*exec.Cmd, error)
}
