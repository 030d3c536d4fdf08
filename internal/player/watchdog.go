package player

import (
	"time"

	"github.com/sirupsen/logrus"
)

const monitorInterval = 500 * time.Millisecond

// stallDetector reports a stall once when the position has not moved for
// timeout while playing. Moving again or pausing re-arms it.
type stallDetector struct {
	timeout   time.Duration
	lastPos   time.Duration
	lastMove  time.Time
	reported  bool
	wasActive bool
}

func (d *stallDetector) observe(playing bool, pos time.Duration, now time.Time) bool {
	if !playing {
		d.wasActive = false
		d.reported = false
		return false
	}
	if !d.wasActive || pos != d.lastPos {
		d.wasActive = true
		d.lastPos = pos
		d.lastMove = now
		d.reported = false
		return false
	}
	if d.reported || now.Sub(d.lastMove) < d.timeout {
		return false
	}
	d.reported = true
	return true
}

// monitor watches the playing item and reports stalls.
func (s *Speaker) monitor() {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	det := &stallDetector{timeout: s.stallTimeout}
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			// An ended item is not stalled; it is waiting for the next load.
			playing := s.state == Playing && s.cur != nil && !s.cur.ended.Load()
			s.mu.Unlock()

			pos := s.Position()
			if det.observe(playing, pos, now) {
				s.log.WithFields(logrus.Fields{
					"position": pos,
					"timeout":  s.stallTimeout,
				}).Warn("playback stalled")
				s.emit(ErrorEvent(ErrPlaybackStalled))
			}
		}
	}
}
