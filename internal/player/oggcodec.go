package player

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

const (
	opusSampleRate = 48000

	// oggMaxFrame bounds the frames per channel one packet decodes to:
	// 120ms of Opus at 48kHz, half the largest Vorbis block.
	oggMaxFrame = 8192
)

var (
	errUnknownOggCodec     = errors.New("ogg: unknown codec (not Opus or Vorbis)")
	errInvalidOpusHead     = errors.New("opus: invalid OpusHead packet")
	errUnsupportedOpus     = errors.New("opus: unsupported version")
	errInvalidVorbisHeader = errors.New("vorbis: invalid identification header")
	errVorbisNotReady      = errors.New("vorbis: headers incomplete")
	errVorbisBufferSmall   = errors.New("vorbis: output buffer too small")
)

// oggCodec decodes the packets of one Ogg logical stream.
type oggCodec interface {
	SampleRate() int
	Channels() int
	// PreSkip is the number of decoded frames to drop at stream start.
	PreSkip() int
	// Ready reports whether every header packet has been received.
	Ready() bool
	AddHeaderPacket(packet []byte) error
	// Decode decodes packet into interleaved pcm and returns the frames
	// per channel written.
	Decode(packet []byte, pcm []float32) (int, error)
	// Reset clears decoder state after a seek.
	Reset() error
}

// detectOggCodec builds a codec from the identification packet.
func detectOggCodec(first []byte) (oggCodec, error) {
	switch {
	case bytes.HasPrefix(first, []byte("OpusHead")):
		return newOpusCodec(first)
	case len(first) >= 7 && first[0] == 0x01 && string(first[1:7]) == "vorbis":
		return newVorbisCodec(first)
	}
	return nil, errUnknownOggCodec
}

type opusCodec struct {
	decoder  *opus.Decoder
	channels int
	preSkip  int
	tags     bool
}

// newOpusCodec parses an OpusHead packet. The OpusTags packet that follows
// completes the headers.
func newOpusCodec(head []byte) (*opusCodec, error) {
	if len(head) < 19 {
		return nil, errInvalidOpusHead
	}
	if head[8] != 1 {
		return nil, errUnsupportedOpus
	}

	channels := int(head[9])
	decoder, err := opus.NewDecoder(opusSampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &opusCodec{
		decoder:  decoder,
		channels: channels,
		preSkip:  int(binary.LittleEndian.Uint16(head[10:12])),
	}, nil
}

// SampleRate is always 48kHz: Opus decodes at that rate whatever the
// input rate recorded in the header.
func (c *opusCodec) SampleRate() int { return opusSampleRate }
func (c *opusCodec) Channels() int   { return c.channels }
func (c *opusCodec) PreSkip() int    { return c.preSkip }
func (c *opusCodec) Ready() bool     { return c.tags }

func (c *opusCodec) AddHeaderPacket(_ []byte) error {
	c.tags = true
	return nil
}

func (c *opusCodec) Decode(packet []byte, pcm []float32) (int, error) {
	return c.decoder.DecodeFloat32(packet, pcm)
}

// Reset is a no-op: the decoder recovers on its own after a discontinuity.
func (c *opusCodec) Reset() error { return nil }

type vorbisCodec struct {
	decoder    *vorbis.Decoder
	channels   int
	sampleRate int
	headers    [][]byte
}

// newVorbisCodec parses the identification header. The comment and setup
// headers are collected before the decoder is built.
func newVorbisCodec(ident []byte) (*vorbisCodec, error) {
	// [0] type, [1:7] "vorbis", [7:11] version, [11] channels, [12:16] rate
	if len(ident) < 16 || binary.LittleEndian.Uint32(ident[7:11]) != 0 || ident[11] == 0 {
		return nil, errInvalidVorbisHeader
	}
	return &vorbisCodec{
		channels:   int(ident[11]),
		sampleRate: int(binary.LittleEndian.Uint32(ident[12:16])),
		headers:    [][]byte{bytes.Clone(ident)},
	}, nil
}

func (c *vorbisCodec) SampleRate() int { return c.sampleRate }
func (c *vorbisCodec) Channels() int   { return c.channels }
func (c *vorbisCodec) PreSkip() int    { return 0 }
func (c *vorbisCodec) Ready() bool     { return c.decoder != nil }

func (c *vorbisCodec) AddHeaderPacket(packet []byte) error {
	if c.decoder != nil {
		return nil
	}
	c.headers = append(c.headers, bytes.Clone(packet))
	if len(c.headers) < 3 {
		return nil
	}

	decoder := &vorbis.Decoder{}
	for _, h := range c.headers {
		if err := decoder.ReadHeader(h); err != nil {
			return err
		}
	}
	c.decoder = decoder
	c.headers = nil
	return nil
}

func (c *vorbisCodec) Decode(packet []byte, pcm []float32) (int, error) {
	if c.decoder == nil {
		return 0, errVorbisNotReady
	}
	out, err := c.decoder.Decode(packet)
	if err != nil {
		return 0, err
	}
	if len(out) > len(pcm) {
		return 0, errVorbisBufferSmall
	}
	return copy(pcm, out) / c.channels, nil
}

func (c *vorbisCodec) Reset() error {
	if c.decoder != nil {
		c.decoder.Clear()
	}
	return nil
}
