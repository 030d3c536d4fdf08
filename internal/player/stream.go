package player

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
	extOPUS = ".opus"
	extM4A  = ".m4a"
	extM4B  = ".m4b"
	extMP4  = ".mp4"
)

type decodeFunc func(f afero.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	extMP3: func(f afero.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeGoMP3(f)
	},
	extFLAC: func(f afero.File) (beep.StreamSeekCloser, beep.Format, error) {
		// Some taggers prepend ID3v2 to FLAC files.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	},
	extWAV: func(f afero.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	extOGG:  decodeOggFile,
	extOGA:  decodeOggFile,
	extOPUS: decodeOggFile,
	extM4A:  decodeM4AFile,
	extM4B:  decodeM4AFile,
	extMP4:  decodeM4AFile,
}

func decodeOggFile(f afero.File) (beep.StreamSeekCloser, beep.Format, error) {
	return decodeOgg(f)
}

func decodeM4AFile(f afero.File) (beep.StreamSeekCloser, beep.Format, error) {
	return decodeM4A(f)
}

// IsMediaFile reports whether path has a format the Speaker can decode.
func IsMediaFile(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load opens and decodes ref, replacing the current item. The new item is
// queued on the speaker paused, with the current rate applied.
func (s *Speaker) Load(ctx context.Context, ref string) error {
	s.mu.Lock()
	configured := s.configured
	if s.state == Playing {
		speaker.Lock()
		s.cur.ctrl.Paused = true
		speaker.Unlock()
		s.state = Paused
	}
	s.mu.Unlock()

	if !configured {
		return ErrPlayerNotInitialized
	}

	decode, ok := decoders[strings.ToLower(filepath.Ext(ref))]
	if !ok {
		return NewError(KindResourceDecode, fmt.Errorf("unsupported format: %s", filepath.Ext(ref)))
	}

	f, err := s.fs.Open(ref)
	if err != nil {
		return NewError(KindResourceLoad, err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return NewError(KindResourceDecode, err)
	}

	if err := ctx.Err(); err != nil {
		streamer.Close()
		f.Close()
		return err
	}

	it := &item{
		ref:      ref,
		file:     f,
		streamer: streamer,
		format:   format,
		duration: format.SampleRate.D(streamer.Len()),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unloadLocked()

	it.resampler = beep.ResampleRatio(resampleQuality, s.ratio(it), streamer)
	it.ctrl = &beep.Ctrl{Streamer: it.resampler, Paused: true}
	it.volume = &effects.Volume{Streamer: it.ctrl, Base: 2}
	s.cur = it
	s.state = Paused
	s.queueLocked()

	s.log.WithFields(logrus.Fields{
		"ref":         ref,
		"duration":    it.duration,
		"sample_rate": int(format.SampleRate),
	}).Debug("media loaded")
	return nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n < len(header) {
		// Too small to carry a tag
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	if string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Tag size is a syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
