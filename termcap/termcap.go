// Package termcap probes the controlling terminal for the capabilities the
// sixel encoder cares about: whether sixel graphics are supported at all,
// and the window geometry in cells and pixels.
package termcap

import (
	"bytes"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
)

// WindowSize is the terminal geometry. XPixel and YPixel are zero when the
// terminal does not report pixel sizes.
type WindowSize struct {
	Cols   int
	Rows   int
	XPixel int
	YPixel int
}

// Device attribute advertised by sixel-capable terminals in the DA1
// response.
const sixelAttribute = 4

const probeTimeout = 2 * time.Second

// SupportsSixel asks the terminal for its primary device attributes and
// reports whether it advertises sixel graphics. The tty is placed in raw
// mode for the duration of the exchange; a terminal that never answers
// fails the probe with a read timeout.
func SupportsSixel(tty *os.File) (bool, error) {
	fd := int(tty.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false, err
	}
	defer term.Restore(fd, state)

	if _, err := tty.WriteString("\x1b[c"); err != nil {
		return false, err
	}
	// Best effort; not every tty supports deadlines.
	_ = tty.SetReadDeadline(time.Now().Add(probeTimeout))
	defer tty.SetReadDeadline(time.Time{})

	buf := make([]byte, 64)
	var resp []byte
	for {
		n, err := tty.Read(buf)
		if err != nil {
			return false, err
		}
		resp = append(resp, buf[:n]...)
		if i := bytes.IndexByte(resp, 'c'); i >= 0 {
			return hasSixelAttribute(resp[:i+1]), nil
		}
		if len(resp) > 256 {
			// Whatever is answering, it is not a DA1 response.
			return false, nil
		}
	}
}

// hasSixelAttribute parses a DA1 response, CSI ? Ps ; ... c, and looks for
// the sixel attribute among the parameters.
func hasSixelAttribute(resp []byte) bool {
	i := bytes.Index(resp, []byte("\x1b[?"))
	if i < 0 {
		return false
	}
	params := resp[i+3 : len(resp)-1]
	for _, p := range bytes.Split(params, []byte{';'}) {
		if v, err := strconv.Atoi(string(p)); err == nil && v == sixelAttribute {
			return true
		}
	}
	return false
}
