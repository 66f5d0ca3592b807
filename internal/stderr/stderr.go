//go:build unix

// Package stderr captures output that native audio libraries (ALSA through
// the speaker) write straight to file descriptor 2, so it cannot corrupt
// the terminal UI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

const bufferedLines = 100

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	lines    chan string
	orig     int
	r, w     *os.File
	stopOnce sync.Once
	done     chan struct{}
}

// Start redirects stderr. It must run before the audio device is opened.
// On error stderr is left untouched and the program can continue.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		lines: make(chan string, bufferedLines),
		orig:  orig,
		r:     r,
		w:     w,
		done:  make(chan struct{}),
	}
	go c.read()
	return c, nil
}

// read forwards non-blank lines, dropping them when nobody keeps up.
func (c *Capture) read() {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
		}
	}
}

// Lines returns captured lines. The channel is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes msg to the real stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr. It is safe to call more than once.
func (c *Capture) Stop() {
	c.stopOnce.Do(func() {
		fd := int(os.Stderr.Fd())
		_ = unix.Dup2(c.orig, fd)
		_ = unix.Close(c.orig)
		// The pipe stays open through fd 2 until it is restored above.
		c.w.Close()
		<-c.done
		c.r.Close()
	})
}
