//go:build !windows
// +build !windows

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// Width returns the column count of the terminal attached to stdout.
func Width() (int, error) {
	terminalMaxSize, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, err
	}
	return int(terminalMaxSize.Col), nil
}
