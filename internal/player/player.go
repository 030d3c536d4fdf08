package player

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	DefaultSampleRate   = beep.SampleRate(44100)
	DefaultStallTimeout = 5 * time.Second

	eventBufferSize = 16
	resampleQuality = 4
)

// The beep speaker is process-wide; it is initialized once whatever the
// number of Speaker values.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

// Speaker is the Backend playing local files through the beep speaker.
type Speaker struct {
	mu    sync.Mutex
	state State
	cur   *item
	rate  float64

	fs           afero.Fs
	log          logrus.FieldLogger
	sampleRate   beep.SampleRate
	stallTimeout time.Duration

	configured bool
	events     chan Event
	seekCh     chan time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// item is one loaded resource and its effect chain:
// decoder -> resampler (rate) -> ctrl (pause) -> volume (seek mute).
type item struct {
	ref       string
	file      io.Closer
	streamer  beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	duration  time.Duration
	ended     atomic.Bool // the speaker dropped the sequence after the last sample
}

func (it *item) close() {
	_ = it.streamer.Close()
	_ = it.file.Close()
}

// Option configures a Speaker.
type Option func(*Speaker)

// WithFS sets the filesystem references are opened from.
func WithFS(fs afero.Fs) Option {
	return func(s *Speaker) { s.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Speaker) { s.log = l }
}

// WithSampleRate sets the speaker output rate. Items at other rates are resampled.
func WithSampleRate(sr int) Option {
	return func(s *Speaker) {
		if sr > 0 {
			s.sampleRate = beep.SampleRate(sr)
		}
	}
}

// WithStallTimeout sets how long the position may stay still while playing
// before a stall is reported. Zero disables stall detection.
func WithStallTimeout(d time.Duration) Option {
	return func(s *Speaker) { s.stallTimeout = d }
}

// New creates a Speaker. Call ConfigureSession before loading.
func New(opts ...Option) *Speaker {
	s := &Speaker{
		state:        Empty,
		rate:         1.0,
		fs:           afero.NewOsFs(),
		log:          logrus.StandardLogger(),
		sampleRate:   DefaultSampleRate,
		stallTimeout: DefaultStallTimeout,
		events:       make(chan Event, eventBufferSize),
		seekCh:       make(chan time.Duration, 1),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigureSession initializes the audio output and starts the background
// watchers. Subsequent calls are no-ops.
func (s *Speaker) ConfigureSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.configured {
		return nil
	}

	if err := initSpeaker(s.sampleRate); err != nil {
		return NewError(KindSessionConfig, err)
	}
	s.configured = true

	go s.seekLoop()
	if s.stallTimeout > 0 {
		go s.monitor()
	}
	go s.watchInterruptions()

	s.log.WithField("sample_rate", int(s.sampleRate)).Debug("audio session configured")
	return nil
}

func initSpeaker(sr beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}

// Events implements Backend.
func (s *Speaker) Events() <-chan Event {
	return s.events
}

// State returns the item slot state.
func (s *Speaker) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops playback, releases the loaded item and stops the watchers.
func (s *Speaker) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.unloadLocked()
	})
	return nil
}

// emit delivers e unless the speaker is closed.
func (s *Speaker) emit(e Event) {
	select {
	case s.events <- e:
	case <-s.done:
	}
}

// unloadLocked clears the speaker and releases the current item. s.mu must be held.
func (s *Speaker) unloadLocked() {
	if s.cur == nil {
		return
	}
	if s.configured {
		speaker.Clear()
	}
	s.cur.close()
	s.cur = nil
	s.state = Empty
}

// queueLocked hands the current item to the speaker. When the sequence runs
// out the item is marked ended; a failed decoder reports an interruption.
func (s *Speaker) queueLocked() {
	it := s.cur
	it.ended.Store(false)
	speaker.Play(beep.Seq(it.volume, beep.Callback(func() {
		it.ended.Store(true)
		// Runs on the speaker goroutine with the speaker locked.
		if err := it.streamer.Err(); err != nil {
			go s.emit(ErrorEvent(NewError(KindPlaybackInterrupted, err)))
		}
	})))
}

func (s *Speaker) ratio(it *item) float64 {
	return float64(it.format.SampleRate) / float64(s.sampleRate) * s.rate
}
