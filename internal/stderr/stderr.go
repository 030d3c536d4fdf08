//go:build !windows

// Package stderr captures output that C audio libraries (ALSA) write
// directly to file descriptor 2, bypassing Go's os.Stderr, and sends it to
// the log instead of the terminal UI.
package stderr

import (
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
)

// capture is an active redirection of fd 2 into a pipe.
type capture struct {
	orig int // duplicate of the terminal's stderr
	r, w *os.File
	done chan struct{}
}

var active *capture

// Start redirects fd 2 into log. Call it before the audio output is
// initialized. On error the program can continue without capture.
func Start(log logrus.FieldLogger) error {
	if active != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	c := &capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		forward(c.r, log)
	}()
	active = c
	return nil
}

// Stop restores the terminal's stderr once every captured line is logged.
func Stop() {
	c := active
	if c == nil {
		return
	}
	active = nil

	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)

	// fd 2 no longer refers to the pipe; closing w ends the forwarder
	c.w.Close()
	<-c.done
	c.r.Close()
}
