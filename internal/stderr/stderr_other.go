//go:build !unix

package stderr

import (
	"errors"
	"os"
)

// Capture is unavailable outside unix platforms.
type Capture struct{}

// Start reports that capture is unsupported; stderr stays as it is.
func Start() (*Capture, error) {
	return nil, errors.New("stderr capture not supported on this platform")
}

// Lines returns nil.
func (c *Capture) Lines() <-chan string { return nil }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing.
func (c *Capture) Stop() {}
