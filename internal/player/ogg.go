package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"

	"github.com/gopxl/beep/v2"
)

const (
	oggHeaderSize   = 27
	oggFlagContinue = 0x01
	oggScanWindow   = 64 << 10
)

var (
	oggMagic             = []byte("OggS")
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
	errEmptyOggStream    = errors.New("ogg: no packets in first page")
)

type oggPageHeader struct {
	Flags        uint8
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	SegmentTable []uint8
}

func (h *oggPageHeader) continued() bool { return h.Flags&oggFlagContinue != 0 }

func (h *oggPageHeader) bodySize() int64 {
	var n int64
	for _, s := range h.SegmentTable {
		n += int64(s)
	}
	return n
}

// parseOggPageHeader reads a page header and its segment table.
func parseOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	var buf [oggHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	if !bytes.Equal(buf[0:4], oggMagic) {
		return nil, errInvalidOggMagic
	}
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	hdr := &oggPageHeader{
		Flags:        buf[5],
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])), //nolint:gosec // -1 marks pages without a packet end
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] is not verified
	}
	if n := int(buf[26]); n > 0 {
		hdr.SegmentTable = make([]uint8, n)
		if _, err := io.ReadFull(r, hdr.SegmentTable); err != nil {
			return nil, err
		}
	}
	return hdr, nil
}

// readOggPageBody splits a page body into packets. A packet still open at
// the end of the page is returned as partial.
func readOggPageBody(r io.Reader, hdr *oggPageHeader) (packets [][]byte, partial []byte, err error) {
	body := make([]byte, hdr.bodySize())
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, err
	}

	var cur []byte
	off := 0
	for _, seg := range hdr.SegmentTable {
		cur = append(cur, body[off:off+int(seg)]...)
		off += int(seg)
		if seg < 255 {
			packets = append(packets, cur)
			cur = nil
		}
	}
	if len(hdr.SegmentTable) > 0 && hdr.SegmentTable[len(hdr.SegmentTable)-1] == 255 {
		partial = cur
	}
	return packets, partial, nil
}

type oggPage struct {
	granule int64
	packets [][]byte
}

// oggReader reads the pages of a single logical stream and joins packets
// that span pages. Granule positions are in decoded samples per channel.
type oggReader struct {
	r           io.ReadSeeker
	dataStart   int64
	lastGranule int64
	partial     []byte
	synced      bool
}

func newOggReader(r io.ReadSeeker) *oggReader {
	return &oggReader{r: r, synced: true}
}

// readPage returns the next page with its completed packets.
func (o *oggReader) readPage() (*oggPage, error) {
	hdr, err := parseOggPageHeader(o.r)
	if err != nil {
		return nil, err
	}
	packets, partial, err := readOggPageBody(o.r, hdr)
	if err != nil {
		return nil, err
	}

	switch {
	case hdr.continued() && !o.synced:
		// Tail of a packet whose head was skipped by a seek
		if len(packets) > 0 {
			packets = packets[1:]
		} else {
			partial = nil
		}
	case len(o.partial) > 0 && len(packets) > 0:
		packets[0] = slices.Concat(o.partial, packets[0])
	case len(o.partial) > 0 && partial != nil:
		partial = slices.Concat(o.partial, partial)
	case len(o.partial) > 0:
		partial = o.partial
	}
	o.partial = partial
	o.synced = true

	return &oggPage{granule: hdr.GranulePos, packets: packets}, nil
}

// scanLastGranule finds the granule position of the last page, reading
// backwards from the end of the stream in growing windows.
func (o *oggReader) scanLastGranule() error {
	end, err := o.r.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	for window := int64(oggScanWindow); ; window *= 2 {
		start := max(end-window, o.dataStart)
		buf := make([]byte, end-start)
		if _, err := o.r.Seek(start, io.SeekStart); err != nil {
			return err
		}
		if _, err := io.ReadFull(o.r, buf); err != nil {
			return err
		}
		if g, ok := lastOggGranule(buf); ok {
			o.lastGranule = g
			return nil
		}
		if start == o.dataStart {
			o.lastGranule = 0
			return nil
		}
	}
}

func lastOggGranule(buf []byte) (int64, bool) {
	for i := len(buf) - oggHeaderSize; i >= 0; i-- {
		if !bytes.Equal(buf[i:i+4], oggMagic) || buf[i+4] != 0 {
			continue
		}
		g := int64(binary.LittleEndian.Uint64(buf[i+6 : i+14])) //nolint:gosec // -1 is skipped below
		if g >= 0 {
			return g, true
		}
	}
	return 0, false
}

// seekToGranule positions the reader at the page holding granule target
// and returns the granule of the first sample decoded from there.
func (o *oggReader) seekToGranule(target int64) (int64, error) {
	pos, start := o.dataStart, int64(0)
	off := o.dataStart
	for {
		if _, err := o.r.Seek(off, io.SeekStart); err != nil {
			return 0, err
		}
		hdr, err := parseOggPageHeader(o.r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if hdr.GranulePos >= target {
			break
		}
		next := off + oggHeaderSize + int64(len(hdr.SegmentTable)) + hdr.bodySize()
		if hdr.GranulePos >= 0 {
			pos, start = next, hdr.GranulePos
		}
		off = next
	}

	o.partial = nil
	o.synced = pos == o.dataStart
	if _, err := o.r.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	return start, nil
}

// decodeOgg decodes an Ogg stream carrying Opus or Vorbis.
func decodeOgg(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	ogg := newOggReader(rc)

	first, err := ogg.readPage()
	if err != nil {
		return nil, beep.Format{}, err
	}
	if len(first.packets) == 0 {
		return nil, beep.Format{}, errEmptyOggStream
	}
	codec, err := detectOggCodec(first.packets[0])
	if err != nil {
		return nil, beep.Format{}, err
	}

	pending := first.packets[1:]
	for !codec.Ready() {
		if len(pending) == 0 {
			page, err := ogg.readPage()
			if err != nil {
				return nil, beep.Format{}, err
			}
			pending = page.packets
			continue
		}
		if err := codec.AddHeaderPacket(pending[0]); err != nil {
			return nil, beep.Format{}, err
		}
		pending = pending[1:]
	}

	// Audio starts on the page following the headers
	if ogg.dataStart, err = rc.Seek(0, io.SeekCurrent); err != nil {
		return nil, beep.Format{}, err
	}
	if err := ogg.scanLastGranule(); err != nil {
		return nil, beep.Format{}, err
	}
	if _, err := rc.Seek(ogg.dataStart, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}

	preSkip := int64(codec.PreSkip())
	d := &oggDecoder{
		ogg:     ogg,
		codec:   codec,
		closer:  rc,
		buf:     make([]float32, oggMaxFrame*codec.Channels()),
		preSkip: preSkip,
		skip:    preSkip,
		length:  max(ogg.lastGranule-preSkip, 0),
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(codec.SampleRate()),
		NumChannels: min(codec.Channels(), 2),
		Precision:   2,
	}
	return d, format, nil
}

// oggDecoder implements beep.StreamSeekCloser over an oggReader. Streams
// with more than two channels play their first two.
type oggDecoder struct {
	ogg    *oggReader
	codec  oggCodec
	closer io.Closer

	packets [][]byte
	buf     []float32
	pcm     []float32
	pcmPos  int

	preSkip int64
	skip    int64 // decoded frames to drop before output
	pos     int64
	length  int64
	err     error
}

func (d *oggDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	channels := d.codec.Channels()
	for n < len(samples) {
		if d.pcmPos < len(d.pcm) {
			left := float64(d.pcm[d.pcmPos])
			right := left
			if channels > 1 {
				right = float64(d.pcm[d.pcmPos+1])
			}
			d.pcmPos += channels
			if d.skip > 0 {
				d.skip--
				continue
			}
			samples[n] = [2]float64{left, right}
			n++
			d.pos++
			continue
		}
		if !d.refill() {
			return n, n > 0
		}
	}
	return n, true
}

// refill decodes the next packet into pcm. It reports false at the end of
// the stream or on a read error.
func (d *oggDecoder) refill() bool {
	for len(d.packets) == 0 {
		page, err := d.ogg.readPage()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				d.err = err
			}
			return false
		}
		d.packets = page.packets
	}

	packet := d.packets[0]
	d.packets = d.packets[1:]

	frames, err := d.codec.Decode(packet, d.buf)
	if err != nil {
		// Corrupt packets are skipped
		frames = 0
	}
	d.pcm = d.buf[:frames*d.codec.Channels()]
	d.pcmPos = 0
	return true
}

func (d *oggDecoder) Err() error { return d.err }

func (d *oggDecoder) Len() int { return int(d.length) }

func (d *oggDecoder) Position() int { return int(min(d.pos, d.length)) }

func (d *oggDecoder) Seek(p int) error {
	target := min(max(int64(p), 0), d.length)

	start, err := d.ogg.seekToGranule(target + d.preSkip)
	if err != nil {
		return err
	}

	d.packets = nil
	d.pcm = nil
	d.pcmPos = 0
	d.pos = target
	d.skip = target + d.preSkip - start
	d.err = nil
	return d.codec.Reset()
}

func (d *oggDecoder) Close() error {
	return d.closer.Close()
}
