//go:build windows
// +build windows

package termcap

import (
	"os"

	"golang.org/x/term"
)

// Size reports the terminal window geometry. The Windows console has no
// pixel size report, so XPixel and YPixel are always zero.
func Size(tty *os.File) (WindowSize, error) {
	cols, rows, err := term.GetSize(int(tty.Fd()))
	if err != nil {
		return WindowSize{}, err
	}
	return WindowSize{Cols: cols, Rows: rows}, nil
}
