//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/samber/lo"

	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/playback"
)

// Adapter connects the playback session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. coverPath may be empty.
func New(ctrl Controller, loc *errmsg.Localizer, coverPath string) (*Adapter, error) {
	if loc == nil {
		loc = errmsg.NewLocalizer("")
	}
	root := &rootAdapter{}
	p := &playerAdapter{ctrl: ctrl, loc: loc, coverPath: coverPath}

	a := &Adapter{server: server.NewServer("keypoint", root, p)}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is not supported: the terminal owns the lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Keypoint", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter by sending
// intents to the session.
type playerAdapter struct {
	ctrl      Controller
	loc       *errmsg.Localizer
	coverPath string
}

func (p *playerAdapter) Next() error {
	p.ctrl.Send(playback.Forward{})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.ctrl.Send(playback.Backward{})
	return nil
}

func (p *playerAdapter) Pause() error {
	p.ctrl.Send(playback.Pause{})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.ctrl.State().IsPlaying {
		p.ctrl.Send(playback.Pause{})
	} else {
		p.ctrl.Send(playback.Play{})
	}
	return nil
}

// Stop pauses: a chapter is never unloaded.
func (p *playerAdapter) Stop() error {
	p.ctrl.Send(playback.Pause{})
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctrl.Send(playback.Play{})
	return nil
}

// Seek maps any forward offset to a forward skip and any backward offset
// to a backward skip; the skip distances are fixed.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	switch {
	case offset > 0:
		p.ctrl.Send(playback.GoForward{})
	case offset < 0:
		p.ctrl.Send(playback.GoBackward{})
	}
	return nil
}

// SetPosition scrubs to position as a single edit.
func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.ctrl.Send(playback.BeginEditing{})
	p.ctrl.Send(playback.SeekTo{Time: time.Duration(position) * time.Microsecond})
	p.ctrl.Send(playback.EndEditing{})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.ctrl.State().IsPlaying {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.ctrl.State().Speed.Rate(), nil
}

// SetRate cycles to rate if it is one of the supported speeds.
func (p *playerAdapter) SetRate(rate float64) error {
	target := playback.Speed(rate)
	if !lo.Contains(playback.AllSpeeds, target) {
		return nil
	}
	for s := p.ctrl.State().Speed; s != target; s = s.Next() {
		p.ctrl.Send(playback.CycleSpeed{})
	}
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.ctrl.State()
	ch := p.ctrl.Chapter()
	book := p.ctrl.Catalog().Book()

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(ch.MediaRef)),
		Length:      types.Microseconds(st.Duration.Microseconds()),
		Title:       p.loc.Sprintf(errmsg.KeyKeyPoint, st.ChapterNumber(), st.ChapterCount),
		Album:       book.Title,
		TrackNumber: st.ChapterNumber(),
	}
	if book.Author != "" {
		meta.Artist = []string{book.Author}
	}
	if p.coverPath != "" {
		meta.ArtUrl = "file://" + p.coverPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.State().CurrentTime.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.AllSpeeds[0].Rate(), nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.AllSpeeds[len(playback.AllSpeeds)-1].Rate(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.ctrl.State().HasForward(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctrl.State().HasBackward(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.ctrl.State().IsLoading, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(ref string) string {
	h := fnv.New64a()
	h.Write([]byte(ref))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
