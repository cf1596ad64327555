//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris zos

package termcap

import (
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func TestSupportsSixel(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	go func() {
		buf := make([]byte, 16)
		for seen := 0; seen < len("\x1b[c"); {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			seen += n
		}
		ptmx.WriteString("\x1b[?62;4;22c")
	}()

	ok, err := SupportsSixel(tty)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSupportsSixelAbsent(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	go func() {
		buf := make([]byte, 16)
		for seen := 0; seen < len("\x1b[c"); {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			seen += n
		}
		ptmx.WriteString("\x1b[?62;22c")
	}()

	ok, err := SupportsSixel(tty)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSize(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{
		Rows: 24, Cols: 80, X: 640, Y: 480,
	}))
	ws, err := Size(tty)
	require.NoError(t, err)
	require.Equal(t, WindowSize{Cols: 80, Rows: 24, XPixel: 640, YPixel: 480}, ws)
}
