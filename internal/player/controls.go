package player

import (
	"context"
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// seekSettle is how long output stays muted after a relative skip.
const seekSettle = 100 * time.Millisecond

// Play resumes the loaded item. An item that played to its end is queued
// on the speaker again.
func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return
	}
	if s.cur.ended.Load() {
		s.queueLocked()
	}
	speaker.Lock()
	s.cur.ctrl.Paused = false
	speaker.Unlock()
	s.state = Playing
}

// Pause pauses the loaded item.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return
	}
	speaker.Lock()
	s.cur.ctrl.Paused = true
	speaker.Unlock()
	s.state = Paused
}

// SetRate sets the playback rate of the current and later items.
func (s *Speaker) SetRate(rate float64) {
	if rate <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rate = rate
	if s.cur == nil {
		return
	}
	speaker.Lock()
	s.cur.resampler.SetRatio(s.ratio(s.cur))
	speaker.Unlock()
}

// Position returns the position within the current item.
func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	it := s.cur
	s.mu.Unlock()

	if it == nil {
		return 0
	}
	speaker.Lock()
	pos := it.streamer.Position()
	speaker.Unlock()
	return it.format.SampleRate.D(pos)
}

// Duration returns the length of the current item.
func (s *Speaker) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return 0
	}
	return s.cur.duration
}

// SeekTo moves to pos, clamped to the item bounds.
func (s *Speaker) SeekTo(ctx context.Context, pos time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return ErrPlayerNotInitialized
	}

	it := s.cur
	target := min(max(it.format.SampleRate.N(pos), 0), it.streamer.Len())

	speaker.Lock()
	err := it.streamer.Seek(target)
	speaker.Unlock()
	if err != nil {
		return NewError(KindUnknown, err)
	}
	return nil
}

// SkipRelative moves the position by delta without blocking.
// Only the latest pending skip is kept.
func (s *Speaker) SkipRelative(delta time.Duration) {
	select {
	case s.seekCh <- delta:
	default:
		// A skip is pending: replace it with this one
		select {
		case <-s.seekCh:
		default:
		}
		select {
		case s.seekCh <- delta:
		default:
		}
	}
}

// seekLoop applies relative skips in order.
func (s *Speaker) seekLoop() {
	for {
		select {
		case <-s.done:
			return
		case delta := <-s.seekCh:
			s.skip(delta)
		}
	}
}

// skip mutes, seeks, then unmutes after a short settle to avoid clicks.
func (s *Speaker) skip(delta time.Duration) {
	s.mu.Lock()
	it := s.cur
	if it == nil {
		s.mu.Unlock()
		return
	}

	speaker.Lock()
	target := it.streamer.Position() + it.format.SampleRate.N(delta)
	target = min(max(target, 0), it.streamer.Len())
	it.volume.Silent = true
	err := it.streamer.Seek(target)
	speaker.Unlock()
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).Warn("skip failed")
	}

	select {
	case <-time.After(seekSettle):
	case <-s.done:
		return
	}

	speaker.Lock()
	it.volume.Silent = false
	speaker.Unlock()
}
