//go:build linux

package player

import (
	"github.com/godbus/dbus/v5"
)

const (
	login1Interface = "org.freedesktop.login1.Manager"
	login1Path      = "/org/freedesktop/login1"
	prepareForSleep = "PrepareForSleep"
)

// watchInterruptions pauses playback when the system goes to sleep and asks
// to resume on wake if it was playing. Without a system bus it does nothing.
func (s *Speaker) watchInterruptions() {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		s.log.WithError(err).Debug("system bus unavailable, sleep interruptions disabled")
		return
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(login1Interface),
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchMember(prepareForSleep),
	); err != nil {
		s.log.WithError(err).Debug("cannot watch sleep signals")
		return
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	var resume bool
	for {
		select {
		case <-s.done:
			return
		case sig := <-signals:
			if sig == nil || sig.Name != login1Interface+"."+prepareForSleep || len(sig.Body) == 0 {
				continue
			}
			sleeping, ok := sig.Body[0].(bool)
			if !ok {
				continue
			}
			resume = s.interruption(sleeping, resume)
		}
	}
}
