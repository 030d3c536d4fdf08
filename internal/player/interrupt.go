package player

// interruption handles the start (began=true) or end of a system
// interruption. It returns whether playback should resume when the
// interruption ends.
func (s *Speaker) interruption(began, resume bool) bool {
	if began {
		playing := s.State() == Playing
		s.log.WithField("was_playing", playing).Info("playback interrupted")
		s.emit(Event{Kind: EventPause})
		return playing
	}
	s.log.WithField("resume", resume).Info("interruption ended")
	if resume {
		s.emit(Event{Kind: EventPlay})
	}
	return false
}
