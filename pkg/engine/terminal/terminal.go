// Package terminal answers the few questions the Zoo front end asks about
// the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// GetWidth returns the column count of stdout, or DefaultWidth when it
// cannot be determined (pipes, test runs).
func GetWidth() int {
	return widthOf(os.Stdout)
}

func widthOf(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// IsInteractive reports whether stdin and stdout are both terminals, which
// the key-driven play loop requires.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
