//go:build !linux

package player

// watchInterruptions is a no-op where there is no login manager to watch.
func (s *Speaker) watchInterruptions() {}
