//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/spf13/afero"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/playback"
)

type fakeController struct {
	state   playback.PlayerState
	cat     *catalog.Catalog
	intents []playback.Intent
}

func (f *fakeController) Send(i playback.Intent) {
	f.intents = append(f.intents, i)
	// Keep speed in step so SetRate terminates
	if _, ok := i.(playback.CycleSpeed); ok {
		f.state.Speed = f.state.Speed.Next()
	}
}

func (f *fakeController) State() playback.PlayerState { return f.state }

func (f *fakeController) Chapter() catalog.Chapter { return f.cat.At(f.state.ChapterIndex) }

func (f *fakeController) Catalog() *catalog.Catalog { return f.cat }

func newTestAdapter(t *testing.T) (*playerAdapter, *fakeController) {
	t.Helper()
	c, err := catalog.New(
		catalog.Book{Title: "Moby-Dick", Author: "Herman Melville"},
		[]catalog.Chapter{{ID: 1, MediaRef: "a.mp3"}, {ID: 2, MediaRef: "b.mp3"}},
		afero.NewMemMapFs(),
	)
	if err != nil {
		t.Fatal(err)
	}
	f := &fakeController{
		cat: c,
		state: playback.PlayerState{
			ChapterIndex: 1,
			ChapterCount: 2,
			Duration:     3 * time.Minute,
			CurrentTime:  90 * time.Second,
			Speed:        playback.DefaultSpeed,
		},
	}
	return &playerAdapter{ctrl: f, loc: errmsg.NewLocalizer("en"), coverPath: "/cache/cover.jpg"}, f
}

func intentNames(intents []playback.Intent) []string {
	names := make([]string, len(intents))
	for i, in := range intents {
		names[i] = playback.IntentName(in)
	}
	return names
}

func TestPlayerAdapter_Transport(t *testing.T) {
	p, f := newTestAdapter(t)

	_ = p.Next()
	_ = p.Previous()
	_ = p.Play()
	_ = p.Pause()
	_ = p.Stop()
	_ = p.Seek(types.Microseconds(5_000_000))
	_ = p.Seek(types.Microseconds(-5_000_000))
	_ = p.Seek(0)

	want := []string{"forward", "backward", "play", "pause", "pause", "goforward", "gobackward"}
	if got := intentNames(f.intents); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("intents = %v, want %v", got, want)
	}
}

func TestPlayerAdapter_PlayPauseFollowsState(t *testing.T) {
	p, f := newTestAdapter(t)

	_ = p.PlayPause()
	f.state.IsPlaying = true
	_ = p.PlayPause()

	if got := intentNames(f.intents); strings.Join(got, ",") != "play,pause" {
		t.Errorf("intents = %v, want [play pause]", got)
	}
}

func TestPlayerAdapter_SetPositionScrubs(t *testing.T) {
	p, f := newTestAdapter(t)

	_ = p.SetPosition("", types.Microseconds(42_000_000))

	if len(f.intents) != 3 {
		t.Fatalf("got %d intents, want 3", len(f.intents))
	}
	if _, ok := f.intents[0].(playback.BeginEditing); !ok {
		t.Errorf("first intent = %T, want BeginEditing", f.intents[0])
	}
	if s, ok := f.intents[1].(playback.SeekTo); !ok || s.Time != 42*time.Second {
		t.Errorf("second intent = %#v, want SeekTo{42s}", f.intents[1])
	}
	if _, ok := f.intents[2].(playback.EndEditing); !ok {
		t.Errorf("third intent = %T, want EndEditing", f.intents[2])
	}
}

func TestPlayerAdapter_SetRate(t *testing.T) {
	p, f := newTestAdapter(t)

	_ = p.SetRate(2.0)
	if len(f.intents) != 2 {
		t.Errorf("SetRate(2) sent %d intents, want 2", len(f.intents))
	}
	if rate, _ := p.Rate(); rate != 2.0 {
		t.Errorf("Rate() = %v, want 2", rate)
	}

	f.intents = nil
	_ = p.SetRate(1.75)
	if len(f.intents) != 0 {
		t.Errorf("unsupported rate sent %d intents", len(f.intents))
	}
}

func TestPlayerAdapter_Properties(t *testing.T) {
	p, f := newTestAdapter(t)

	if status, _ := p.PlaybackStatus(); status != types.PlaybackStatusPaused {
		t.Errorf("PlaybackStatus() = %v, want Paused", status)
	}
	f.state.IsPlaying = true
	if status, _ := p.PlaybackStatus(); status != types.PlaybackStatusPlaying {
		t.Errorf("PlaybackStatus() = %v, want Playing", status)
	}

	if pos, _ := p.Position(); pos != 90_000_000 {
		t.Errorf("Position() = %d, want 90000000", pos)
	}
	if next, _ := p.CanGoNext(); next {
		t.Error("CanGoNext() = true at last chapter")
	}
	if prev, _ := p.CanGoPrevious(); !prev {
		t.Error("CanGoPrevious() = false at chapter 2")
	}
	if lo, _ := p.MinimumRate(); lo != 0.5 {
		t.Errorf("MinimumRate() = %v", lo)
	}
	if hi, _ := p.MaximumRate(); hi != 2.5 {
		t.Errorf("MaximumRate() = %v", hi)
	}
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	p, _ := newTestAdapter(t)

	meta, err := p.Metadata()
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "Key point 2 of 2" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Album != "Moby-Dick" || len(meta.Artist) != 1 || meta.Artist[0] != "Herman Melville" {
		t.Errorf("Album/Artist = %q/%v", meta.Album, meta.Artist)
	}
	if meta.Length != types.Microseconds(180_000_000) {
		t.Errorf("Length = %d", meta.Length)
	}
	if meta.ArtUrl != "file:///cache/cover.jpg" {
		t.Errorf("ArtUrl = %q", meta.ArtUrl)
	}
	if !strings.HasPrefix(string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/") {
		t.Errorf("TrackId = %q", meta.TrackId)
	}
}
