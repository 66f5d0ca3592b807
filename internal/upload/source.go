package upload

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
)

// ErrReleased is returned when opening a source after Close.
var ErrReleased = errors.New("source released")

// FileSource reads audio from a file on disk.
type FileSource string

// Open implements player.Source.
func (p FileSource) Open() (io.ReadSeekCloser, error) {
	return os.Open(string(p))
}

// MemorySource serves audio from a byte slice, like a browser object URL.
// Close drops the bytes; later opens fail with ErrReleased.
type MemorySource struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySource wraps data without copying it.
func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

// Open implements player.Source.
func (m *MemorySource) Open() (io.ReadSeekCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrReleased
	}
	return nopCloser{bytes.NewReader(m.data)}, nil
}

// Close releases the underlying bytes.
func (m *MemorySource) Close() error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
