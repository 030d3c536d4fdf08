package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the default ALAC frames per packet.
const alacFrameSize = 4096

var errUnsupportedM4ACodec = errors.New("m4a: unsupported codec")

// m4aDecoder reads samples from an MP4 container (m4a, m4b) and decodes
// them with faad2 for AAC or alac for Apple Lossless. Output is stereo;
// mono is duplicated.
type m4aDecoder struct {
	container *m4a.Reader
	closer    io.Closer
	codec     m4a.CodecType
	aac       *faad2.Decoder
	alac      *alac.Alac

	sampleRate int
	sampleSize int
	channels   int
	length     int

	next      int // index of the next container sample
	pcm       [][2]float64
	pcmOffset int
	err       error
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	d := &m4aDecoder{
		container:  container,
		closer:     rc,
		codec:      container.Codec(),
		sampleRate: int(container.SampleRate()),
		sampleSize: int(container.SampleSize()),
		channels:   int(container.Channels()),
	}
	if d.sampleRate <= 0 || d.channels <= 0 {
		return nil, beep.Format{}, errors.New("m4a: invalid audio track")
	}
	d.length = int(container.Duration().Seconds() * float64(d.sampleRate))

	precision := 2
	switch d.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, err
		}
		d.aac = dec

	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  d.sampleRate,
			SampleSize:  d.sampleSize,
			NumChannels: d.channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		d.alac = dec
		if d.sampleSize == 24 {
			precision = 3
		}

	default:
		return nil, beep.Format{}, errUnsupportedM4ACodec
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(d.sampleRate),
		NumChannels: 2,
		Precision:   precision,
	}
	return d, format, nil
}

func (d *m4aDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	for n < len(samples) {
		if d.pcmOffset < len(d.pcm) {
			c := copy(samples[n:], d.pcm[d.pcmOffset:])
			d.pcmOffset += c
			n += c
			continue
		}
		if d.next >= d.container.SampleCount() {
			return n, n > 0
		}

		data, err := d.container.ReadSample(d.next)
		if err != nil {
			d.err = err
			return n, n > 0
		}
		d.next++

		if d.pcm, err = d.decode(data); err != nil {
			d.err = err
			return n, n > 0
		}
		d.pcmOffset = 0
	}
	return n, true
}

func (d *m4aDecoder) decode(data []byte) ([][2]float64, error) {
	if d.aac != nil {
		pcm, err := d.aac.Decode(context.Background(), data)
		if err != nil {
			return nil, err
		}
		return d.int16Frames(pcm), nil
	}
	raw := d.alac.Decode(data)
	if d.sampleSize == 24 {
		return d.pcm24Frames(raw), nil
	}
	return d.pcm16Frames(raw), nil
}

func (d *m4aDecoder) int16Frames(pcm []int16) [][2]float64 {
	frames := make([][2]float64, len(pcm)/d.channels)
	for i := range frames {
		left := pcm[i*d.channels]
		right := left
		if d.channels > 1 {
			right = pcm[i*d.channels+1]
		}
		frames[i] = [2]float64{float64(left) / 32768.0, float64(right) / 32768.0}
	}
	return frames
}

// pcm16Frames converts little-endian 16-bit ALAC output.
func (d *m4aDecoder) pcm16Frames(data []byte) [][2]float64 {
	stride := 2 * d.channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := int16(data[off]) | int16(data[off+1])<<8
		right := left
		if d.channels > 1 {
			right = int16(data[off+2]) | int16(data[off+3])<<8
		}
		frames[i] = [2]float64{float64(left) / 32768.0, float64(right) / 32768.0}
	}
	return frames
}

// pcm24Frames converts little-endian 24-bit ALAC output.
func (d *m4aDecoder) pcm24Frames(data []byte) [][2]float64 {
	stride := 3 * d.channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := int24(data[off:])
		right := left
		if d.channels > 1 {
			right = int24(data[off+3:])
		}
		frames[i] = [2]float64{float64(left) / 8388608.0, float64(right) / 8388608.0}
	}
	return frames
}

func int24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF
	}
	return v
}

func (d *m4aDecoder) Err() error { return d.err }

func (d *m4aDecoder) Len() int { return d.length }

func (d *m4aDecoder) Position() int {
	pos := d.container.SampleTime(d.next)
	return min(int(pos.Seconds()*float64(d.sampleRate)), d.length)
}

func (d *m4aDecoder) Seek(p int) error {
	p = min(max(p, 0), d.length)
	pos := time.Duration(float64(p) / float64(d.sampleRate) * float64(time.Second))

	d.next = d.container.SeekToTime(pos)
	d.pcm = nil
	d.pcmOffset = 0
	d.err = nil
	return nil
}

func (d *m4aDecoder) Close() error {
	if d.aac != nil {
		d.aac.Close(context.Background())
	}
	return d.closer.Close()
}
