package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// go-mp3 always outputs 16-bit stereo: 4 bytes per frame.
const mp3FrameBytes = 4

// mp3Streamer adapts a go-mp3 decoder to beep.StreamSeekCloser.
type mp3Streamer struct {
	dec    *mp3.Decoder
	closer io.Closer
	buf    []byte
	err    error
}

func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Streamer{dec: dec, closer: rc, buf: make([]byte, 8192)}, format, nil
}

func (m *mp3Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if m.err != nil {
		return 0, false
	}

	want := len(samples) * mp3FrameBytes
	if len(m.buf) < want {
		m.buf = make([]byte, want)
	}

	read, err := io.ReadFull(m.dec, m.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		m.err = err
		return 0, false
	}

	frames := read / mp3FrameBytes
	for i := range frames {
		off := i * mp3FrameBytes
		left := int16(binary.LittleEndian.Uint16(m.buf[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(m.buf[off+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}
	return frames, frames > 0
}

func (m *mp3Streamer) Err() error { return m.err }

func (m *mp3Streamer) Len() int {
	return max(int(m.dec.SampleCount()), 0)
}

func (m *mp3Streamer) Position() int {
	return int(m.dec.SamplePosition())
}

func (m *mp3Streamer) Seek(p int) error {
	p = min(max(p, 0), m.Len())
	if err := m.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	m.err = nil
	return nil
}

func (m *mp3Streamer) Close() error {
	return m.closer.Close()
}
