package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	errOggCapture   = errors.New("ogg: invalid capture pattern")
	errOggVersion   = errors.New("ogg: unsupported version")
	errOggNoGranule = errors.New("ogg: no granule position")
)

const (
	oggHeaderSize = 27
	oggContinued  = 0x01
	// header, full lacing table and the largest possible body
	oggMaxPageSize = oggHeaderSize + 255 + 255*255
)

// oggPageHeader is the fixed part of an Ogg page plus its lacing table.
type oggPageHeader struct {
	Flags      byte
	GranulePos int64
	Segments   []uint8
}

func (h *oggPageHeader) bodySize() int {
	n := 0
	for _, s := range h.Segments {
		n += int(s)
	}
	return n
}

// endsPacket reports whether the last packet on the page is complete.
func (h *oggPageHeader) endsPacket() bool {
	return len(h.Segments) > 0 && h.Segments[len(h.Segments)-1] < 255
}

func readOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	var buf [oggHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	if string(buf[0:4]) != "OggS" {
		return nil, errOggCapture
	}
	if buf[4] != 0 {
		return nil, errOggVersion
	}

	hdr := &oggPageHeader{
		Flags:      buf[5],
		GranulePos: int64(binary.LittleEndian.Uint64(buf[6:14])), //nolint:gosec // -1 marks pages without a granule
		Segments:   make([]uint8, buf[26]),
	}
	// the CRC at buf[22:26] is not verified
	if _, err := io.ReadFull(r, hdr.Segments); err != nil {
		return nil, err
	}
	return hdr, nil
}

// oggPacketReader reassembles the packets of a single logical stream.
type oggPacketReader struct {
	r       io.Reader
	packets [][]byte
	partial []byte
}

func newOggPacketReader(r io.Reader) *oggPacketReader {
	return &oggPacketReader{r: r}
}

// reset drops buffered packets after the underlying reader moved.
func (o *oggPacketReader) reset() {
	o.packets = nil
	o.partial = nil
}

// next returns the next complete packet, or io.EOF at the end of the stream.
func (o *oggPacketReader) next() ([]byte, error) {
	for len(o.packets) == 0 {
		if err := o.readPage(); err != nil {
			return nil, err
		}
	}
	p := o.packets[0]
	o.packets = o.packets[1:]
	return p, nil
}

func (o *oggPacketReader) readPage() error {
	hdr, err := readOggPageHeader(o.r)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}
		return err
	}
	body := make([]byte, hdr.bodySize())
	if _, err := io.ReadFull(o.r, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}
		return err
	}

	continued := hdr.Flags&oggContinued != 0
	// The tail of a packet whose start we never read is dropped
	skip := continued && o.partial == nil
	var cur []byte
	if continued {
		cur = o.partial
	}
	o.partial = nil

	off := 0
	for _, seg := range hdr.Segments {
		cur = append(cur, body[off:off+int(seg)]...)
		off += int(seg)
		if seg == 255 {
			continue
		}
		if skip {
			skip = false
		} else {
			o.packets = append(o.packets, cur)
		}
		cur = nil
	}
	if !skip && cur != nil {
		o.partial = cur
	}
	return nil
}

// lastOggGranule returns the granule position of the last page in r.
func lastOggGranule(r io.ReadSeeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.Seek(max(size-oggMaxPageSize, 0), io.SeekStart); err != nil {
		return 0, err
	}
	tail, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	capture := []byte("OggS")
	for i := bytes.LastIndex(tail, capture); i >= 0; i = bytes.LastIndex(tail[:i], capture) {
		if i+oggHeaderSize > len(tail) || tail[i+4] != 0 {
			continue
		}
		if g := int64(binary.LittleEndian.Uint64(tail[i+6 : i+14])); g >= 0 { //nolint:gosec // see readOggPageHeader
			return g, nil
		}
	}
	return 0, errOggNoGranule
}

// isOpusStream reports whether the first Ogg page of r carries an Opus
// identification header. r is rewound to the start.
func isOpusStream(r io.ReadSeeker) bool {
	defer func() { _, _ = r.Seek(0, io.SeekStart) }()
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	hdr, err := readOggPageHeader(r)
	if err != nil {
		return false
	}
	magic := make([]byte, 8)
	if hdr.bodySize() < len(magic) {
		return false
	}
	if _, err := io.ReadFull(r, magic); err != nil {
		return false
	}
	return string(magic) == "OpusHead"
}
