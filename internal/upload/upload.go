// Package upload turns user-selected files into entries the playback
// controller can accept. It plays the role of a browser file picker:
// every entry carries a name, a declared media type and a byte source.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/llehouerou/deck/internal/player"
)

// AudioPrefix is the media type prefix of accepted entries.
const AudioPrefix = "audio/"

// FileEntry is one selected file.
type FileEntry struct {
	Name      string
	MediaType string
	Size      int64
	Source    player.Source
}

// IsAudio reports whether the declared media type is an audio type.
func IsAudio(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), AudioPrefix)
}

// PathError records a path that could not be turned into an entry.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// extensionTypes covers audio extensions missing from many system mime tables.
var extensionTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".m4b":  "audio/mp4",
}

// DetectType returns the media type for a file name, sniffing content from
// r when the extension is unknown. r may be nil.
func DetectType(name string, r io.ReadSeeker) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	if r != nil {
		if t := player.SniffType(r); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}

// FromPaths builds entries for the given files. Directories contribute
// their direct children in name order. Paths that cannot be read are
// returned as *PathError values alongside the entries that could.
func FromPaths(paths ...string) ([]FileEntry, []error) {
	var entries []FileEntry
	var errs []error

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, &PathError{Path: path, Err: err})
			continue
		}
		if !info.IsDir() {
			e, err := fromFile(path, info)
			if err != nil {
				errs = append(errs, &PathError{Path: path, Err: err})
				continue
			}
			entries = append(entries, e)
			continue
		}

		children, err := os.ReadDir(path)
		if err != nil {
			errs = append(errs, &PathError{Path: path, Err: err})
			continue
		}
		slices.SortFunc(children, func(a, b os.DirEntry) int {
			return strings.Compare(a.Name(), b.Name())
		})
		for _, c := range children {
			if c.IsDir() {
				continue
			}
			child := filepath.Join(path, c.Name())
			ci, err := c.Info()
			if err != nil {
				errs = append(errs, &PathError{Path: child, Err: err})
				continue
			}
			e, err := fromFile(child, ci)
			if err != nil {
				errs = append(errs, &PathError{Path: child, Err: err})
				continue
			}
			entries = append(entries, e)
		}
	}
	return entries, errs
}

func fromFile(path string, info os.FileInfo) (FileEntry, error) {
	if !info.Mode().IsRegular() {
		return FileEntry{}, errors.New("not a regular file")
	}
	f, err := os.Open(path)
	if err != nil {
		return FileEntry{}, err
	}
	defer f.Close()

	return FileEntry{
		Name:      filepath.Base(path),
		MediaType: DetectType(path, f),
		Size:      info.Size(),
		Source:    FileSource(path),
	}, nil
}

// FromBytes builds an entry over in-memory data. An empty mediaType is
// detected from the name and content.
func FromBytes(name, mediaType string, data []byte) FileEntry {
	if data == nil {
		data = []byte{}
	}
	if mediaType == "" {
		mediaType = DetectType(name, bytes.NewReader(data))
	}
	return FileEntry{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Source:    NewMemorySource(data),
	}
}
