package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/deck/internal/player"
)

func TestIsAudio(t *testing.T) {
	tests := []struct {
		mediaType string
		want      bool
	}{
		{"audio/mpeg", true},
		{"audio/wav", true},
		{"Audio/FLAC", true},
		{"text/plain", false},
		{"video/mp4", false},
		{"application/octet-stream", false},
		{"", false},
		{"audio", false},
	}
	for _, tt := range tests {
		if got := IsAudio(tt.mediaType); got != tt.want {
			t.Errorf("IsAudio(%q) = %v, want %v", tt.mediaType, got, tt.want)
		}
	}
}

func TestDetectType_ByExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"song.mp3", "audio/mpeg"},
		{"SONG.FLAC", "audio/flac"},
		{"take.wav", "audio/wav"},
		{"track.ogg", "audio/ogg"},
		{"voice.opus", "audio/opus"},
		{"album.m4a", "audio/mp4"},
		{"raw.aac", "audio/aac"},
	}
	for _, tt := range tests {
		if got := DetectType(tt.name, nil); got != tt.want {
			t.Errorf("DetectType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	// The system mime table decides the exact type for text files
	if got := DetectType("notes.txt", nil); IsAudio(got) {
		t.Errorf("DetectType(notes.txt) = %q, want a non-audio type", got)
	}
}

func TestExtensionTypes_AllDecodable(t *testing.T) {
	for ext, mediaType := range extensionTypes {
		if player.CanonicalType(mediaType) == "" {
			t.Errorf("extension %s maps to %q, which no decoder handles", ext, mediaType)
		}
	}
}

func TestDetectType_SniffsUnknownExtension(t *testing.T) {
	data := append([]byte("fLaC\x00\x00\x00\x22"), make([]byte, 32)...)
	e := FromBytes("recording.unknownext", "", data)
	assert.Equal(t, "audio/flac", e.MediaType)

	e = FromBytes("blob.unknownext", "", []byte("hello"))
	assert.Equal(t, "application/octet-stream", e.MediaType)
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFromPaths_Files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.mp3", []byte("ID3"))
	b := writeFile(t, dir, "b.txt", []byte("notes"))
	c := writeFile(t, dir, "c.wav", []byte("RIFF"))

	entries, errs := FromPaths(a, b, c)

	require.Empty(t, errs)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.mp3", entries[0].Name)
	assert.Equal(t, "audio/mpeg", entries[0].MediaType)
	assert.False(t, IsAudio(entries[1].MediaType))
	assert.Equal(t, "audio/wav", entries[2].MediaType)
	assert.EqualValues(t, 5, entries[1].Size)
}

func TestFromPaths_DirectoryOneLevelSorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.flac", []byte("x"))
	writeFile(t, dir, "a.mp3", []byte("x"))
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "deep.mp3", []byte("x"))

	entries, errs := FromPaths(dir)

	require.Empty(t, errs)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.mp3", entries[0].Name)
	assert.Equal(t, "b.flac", entries[1].Name)
}

func TestFromPaths_MissingPathReported(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.mp3", []byte("x"))
	missing := filepath.Join(dir, "missing.mp3")

	entries, errs := FromPaths(missing, ok)

	require.Len(t, entries, 1)
	require.Len(t, errs, 1)
	var pe *PathError
	require.ErrorAs(t, errs[0], &pe)
	assert.Equal(t, missing, pe.Path)
	assert.True(t, errors.Is(errs[0], os.ErrNotExist))
}

func TestFileSource_Open(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.mp3", []byte("payload"))

	rc, err := FileSource(path).Open()
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestMemorySource_IndependentReaders(t *testing.T) {
	src := NewMemorySource([]byte("abc"))

	r1, err := src.Open()
	require.NoError(t, err)
	_, _ = io.ReadAll(r1)

	r2, err := src.Open()
	require.NoError(t, err)
	got, _ := io.ReadAll(r2)
	assert.Equal(t, "abc", string(got))
}

func TestMemorySource_Release(t *testing.T) {
	src := NewMemorySource([]byte("abc"))

	require.NoError(t, src.Close())

	_, err := src.Open()
	assert.ErrorIs(t, err, ErrReleased)
}
