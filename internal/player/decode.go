package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Canonical media types understood by the decoders.
const (
	TypeMP3    = "audio/mpeg"
	TypeFLAC   = "audio/flac"
	TypeWAV    = "audio/wav"
	TypeVorbis = "audio/ogg"
	TypeOpus   = "audio/opus"
	TypeM4A    = "audio/mp4"
	TypeAAC    = "audio/aac"
)

// ErrUnsupportedFormat is returned when no decoder handles a source.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

var mediaTypeAliases = map[string]string{
	"audio/mpeg":          TypeMP3,
	"audio/mp3":           TypeMP3,
	"audio/mpeg3":         TypeMP3,
	"audio/x-mpeg-3":      TypeMP3,
	"audio/flac":          TypeFLAC,
	"audio/x-flac":        TypeFLAC,
	"audio/wav":           TypeWAV,
	"audio/wave":          TypeWAV,
	"audio/x-wav":         TypeWAV,
	"audio/vnd.wave":      TypeWAV,
	"audio/ogg":           TypeVorbis,
	"audio/vorbis":        TypeVorbis,
	"audio/x-vorbis+ogg":  TypeVorbis,
	"application/ogg":     TypeVorbis,
	"audio/x-vorbis":      TypeVorbis,
	"audio/opus":          TypeOpus,
	"audio/x-opus":        TypeOpus,
	"audio/x-opus+ogg":    TypeOpus,
	"audio/mp4":           TypeM4A,
	"audio/m4a":           TypeM4A,
	"audio/x-m4a":         TypeM4A,
	"audio/aac":           TypeAAC,
	"audio/x-aac":         TypeAAC,
	"audio/aacp":          TypeAAC,
	"audio/x-hx-aac-adts": TypeAAC,
}

// CanonicalType maps a declared media type to one of the Type constants,
// or returns "" when the type is not decodable.
func CanonicalType(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mediaTypeAliases[mt]
}

// SniffType inspects the content of r and returns its canonical media type,
// or "" if the content is not recognized. r is rewound to the start.
func SniffType(r io.ReadSeeker) string {
	defer func() { _, _ = r.Seek(0, io.SeekStart) }()

	header := make([]byte, 12)
	n, _ := io.ReadFull(r, header)
	header = header[:n]
	if n >= 12 && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")) {
		return TypeWAV
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ""
	}

	_, fileType, err := tag.Identify(r)
	if err != nil {
		if n >= 2 && header[0] == 0xFF {
			// ADTS sync is 12 bits with layer 0, which MPEG audio never uses
			if header[1]&0xF6 == 0xF0 {
				return TypeAAC
			}
			// Raw MPEG frames without any tag start with an 11-bit sync word.
			if header[1]&0xE0 == 0xE0 {
				return TypeMP3
			}
		}
		return ""
	}
	switch fileType {
	case tag.MP3:
		return TypeMP3
	case tag.FLAC:
		return TypeFLAC
	case tag.OGG:
		if isOpusStream(r) {
			return TypeOpus
		}
		return TypeVorbis
	case tag.M4A, tag.M4B:
		return TypeM4A
	default:
		return ""
	}
}

// decode opens a beep streamer for rc. The caller owns rc until decode
// succeeds; afterwards closing the streamer closes rc.
func decode(rc io.ReadSeekCloser, mediaType string) (beep.StreamSeekCloser, beep.Format, error) {
	kind := CanonicalType(mediaType)
	if kind == "" {
		kind = SniffType(rc)
	}

	switch kind {
	case TypeMP3:
		return decodeMP3(rc)
	case TypeFLAC:
		// Some taggers prepend an ID3v2 block the FLAC decoder cannot skip
		if err := skipID3v2(rc); err != nil {
			return nil, beep.Format{}, err
		}
		s, f, err := flac.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, err
		}
		return withCloser(s, rc), f, nil
	case TypeWAV:
		s, f, err := wav.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, err
		}
		return withCloser(s, rc), f, nil
	case TypeVorbis:
		// .ogg files may carry Opus as well
		if isOpusStream(rc) {
			return decodeOpus(rc)
		}
		return vorbis.Decode(rc)
	case TypeOpus:
		return decodeOpus(rc)
	case TypeM4A:
		return decodeM4A(rc)
	case TypeAAC:
		return decodeADTS(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
}

// closingStreamer closes the underlying reader along with the decoder,
// for decoders that only take an io.Reader.
type closingStreamer struct {
	beep.StreamSeekCloser
	rc io.Closer
}

func withCloser(s beep.StreamSeekCloser, rc io.Closer) beep.StreamSeekCloser {
	return &closingStreamer{StreamSeekCloser: s, rc: rc}
}

func (c *closingStreamer) Close() error {
	err := c.StreamSeekCloser.Close()
	// Some decoders already close readers that implement io.Closer
	if cerr := c.rc.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}

// skipID3v2 positions r after a leading ID3v2 tag, or at the start if none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 significant bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
