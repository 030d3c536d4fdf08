package playback

import (
	"errors"
	"slices"
	"testing"
	"testing/synctest"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/player"
)

type fixture struct {
	o       *Orchestrator
	backend *player.Mock
	media   afero.Fs
	sub     *Subscription
}

// newFixture builds an orchestrator over three chapters backed by a mock
// with one minute items. Must be called inside a synctest bubble.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	media := afero.NewMemMapFs()
	for _, name := range []string{"ch1.mp3", "ch2.mp3", "ch3.mp3"} {
		require.NoError(t, afero.WriteFile(media, name, []byte("audio"), 0o644))
	}
	c, err := catalog.New(catalog.Book{Title: "Test Book"}, []catalog.Chapter{
		{ID: 1, MediaRef: "ch1.mp3", Summary: "one"},
		{ID: 2, MediaRef: "ch2.mp3", Summary: "two"},
		{ID: 3, MediaRef: "ch3.mp3", Summary: "three"},
	}, media)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	backend := player.NewMock()
	o := New(backend, c, append([]Option{WithLogger(logger)}, opts...)...)
	return &fixture{o: o, backend: backend, media: media, sub: o.Subscribe()}
}

// start sends OnAppear and waits until the first chapter plays.
func (f *fixture) start(t *testing.T) {
	t.Helper()
	f.o.Send(OnAppear{})
	synctest.Wait()
	require.True(t, f.o.State().IsPlaying, "session should be playing after OnAppear")
	f.backend.ResetCalls()
}

func (f *fixture) send(intents ...Intent) {
	for _, i := range intents {
		f.o.Send(i)
	}
	synctest.Wait()
}

// tick advances the fake clock by n polling periods.
func (f *fixture) tick(n int) {
	for range n {
		time.Sleep(DefaultPollInterval)
		synctest.Wait()
	}
}

func (f *fixture) activeLoops() int {
	return int(f.o.poll.running.Load())
}

func drainStates(sub *Subscription) []StateChange {
	var out []StateChange
	for {
		select {
		case e := <-sub.StateChanged:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestOrchestrator_InitialState(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		synctest.Wait()

		s := f.o.State()
		assert.Equal(t, 0, s.ChapterIndex)
		assert.Equal(t, 3, s.ChapterCount)
		assert.Equal(t, DurationPlaceholder, s.Duration)
		assert.Equal(t, DefaultSpeed, s.Speed)
		assert.False(t, s.HasBackward())
		assert.True(t, s.HasForward())
		assert.Empty(t, f.backend.Calls(), "nothing happens before OnAppear")

		require.NoError(t, f.o.Close())
	})
}

func TestOrchestrator_OnAppear_LoadsAndPlays(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()

		f.send(OnAppear{})

		assert.Equal(t, []string{"configure", "load:ch1.mp3", "play"}, f.backend.Calls())
		s := f.o.State()
		assert.True(t, s.IsPlaying)
		assert.False(t, s.IsLoading)
		assert.Equal(t, time.Minute, s.Duration)
		assert.Equal(t, 1, f.activeLoops())

		intents := make([]string, 0, 3)
		for _, e := range drainStates(f.sub) {
			intents = append(intents, e.Intent)
		}
		assert.Equal(t, []string{"fetchResource", "readyToPlay", "play"}, intents)

		select {
		case c := <-f.sub.ChapterChanged:
			assert.Equal(t, 0, c.Index)
			assert.Equal(t, "ch1.mp3", c.Chapter.MediaRef)
		default:
			t.Error("expected a ChapterChange for the first chapter")
		}
	})
}

func TestOrchestrator_OnAppear_ConfigureFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.backend.SetConfigureError(errors.New("no device"))

		f.send(OnAppear{})

		assert.Equal(t, []string{"configure"}, f.backend.Calls())
		s := f.o.State()
		assert.True(t, s.HasError)
		alert, ok := s.PendingError.Get()
		require.True(t, ok)
		en := errmsg.NewLocalizer("en")
		assert.Equal(t, en.Sprintf(errmsg.KeyAlertTitle), alert.Title)
		assert.Contains(t, alert.Message, "no device")

		e := <-f.sub.Error
		assert.ErrorIs(t, e.Err, player.ErrSessionConfig)
	})
}

func TestOrchestrator_Forward_LoadsNextChapter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.send(Forward{})

		s := f.o.State()
		assert.Equal(t, 1, s.ChapterIndex)
		assert.True(t, s.IsPlaying)
		assert.Equal(t, []string{"pause", "load:ch2.mp3", "play"}, f.backend.Calls())
		assert.Equal(t, 1, f.activeLoops())
	})
}

func TestOrchestrator_NavigationAtBoundsIsNoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		drainStates(f.sub)

		before := f.o.State()
		f.send(Backward{})
		assert.Equal(t, before, f.o.State())
		assert.Empty(t, f.backend.Calls())
		assert.Empty(t, drainStates(f.sub))

		f.send(Forward{}, Forward{})
		require.Equal(t, 2, f.o.State().ChapterIndex)
		f.backend.ResetCalls()
		drainStates(f.sub)

		before = f.o.State()
		f.send(Forward{})
		assert.Equal(t, before, f.o.State())
		assert.Empty(t, f.backend.Calls())
		assert.Empty(t, drainStates(f.sub))

		f.send(Backward{})
		assert.Equal(t, 1, f.o.State().ChapterIndex)
		assert.Equal(t, []string{"pause", "load:ch2.mp3", "play"}, f.backend.Calls())
	})
}

func TestOrchestrator_CycleSpeed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		for range AllSpeeds {
			f.send(CycleSpeed{})
		}

		assert.Equal(t, DefaultSpeed, f.o.State().Speed)
		assert.Equal(t, []string{"rate:1.5", "rate:2", "rate:2.5", "rate:0.5", "rate:1"}, f.backend.Calls())
	})
}

func TestOrchestrator_RelativeSkips(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.send(GoBackward{}, GoForward{})
		assert.Equal(t, []string{"skip:-5s", "skip:10s"}, f.backend.Calls())
	})

	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, WithSkip(15*time.Second, 30*time.Second))
		defer f.o.Close()
		f.start(t)

		f.send(GoBackward{}, GoForward{})
		assert.Equal(t, []string{"skip:-15s", "skip:30s"}, f.backend.Calls())
	})
}

func TestOrchestrator_PollingUpdatesCurrentTime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.backend.SetPosition(3 * time.Second)
		f.tick(1)
		assert.Equal(t, 3*time.Second, f.o.State().CurrentTime)

		// A second play restarts the loop rather than adding one
		f.send(Play{})
		assert.Equal(t, 1, f.activeLoops())

		f.backend.SetPosition(4 * time.Second)
		f.tick(1)
		assert.Equal(t, 4*time.Second, f.o.State().CurrentTime)
	})
}

func TestOrchestrator_PollInterval(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, WithPollInterval(time.Second))
		defer f.o.Close()
		f.start(t)

		f.backend.SetPosition(7 * time.Second)
		f.tick(1)
		assert.Zero(t, f.o.State().CurrentTime, "no sample before the period elapsed")

		f.tick(3)
		assert.Equal(t, 7*time.Second, f.o.State().CurrentTime)
	})
}

func TestOrchestrator_CancellationStopsUpdates(t *testing.T) {
	tests := []struct {
		name   string
		cancel func(f *fixture)
	}{
		{"pause", func(f *fixture) { f.send(Pause{}) }},
		{"beginEditing", func(f *fixture) { f.send(BeginEditing{}) }},
		{"error event", func(f *fixture) {
			f.backend.Emit(player.ErrorEvent(player.ErrPlaybackStalled))
			synctest.Wait()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				f := newFixture(t)
				defer f.o.Close()
				f.start(t)

				f.backend.SetPosition(2 * time.Second)
				f.tick(1)
				require.Equal(t, 2*time.Second, f.o.State().CurrentTime)

				tt.cancel(f)
				drainStates(f.sub)

				f.backend.SetPosition(9 * time.Second)
				f.tick(8)

				assert.Equal(t, 2*time.Second, f.o.State().CurrentTime)
				assert.Zero(t, f.activeLoops())
				for _, e := range drainStates(f.sub) {
					assert.NotEqual(t, "updatedCurrentTime", e.Intent)
				}
			})
		})
	}
}

func TestOrchestrator_ErrorDuringScrubSeekKeepsPollingStopped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		release := f.backend.HoldSeeks()

		f.send(BeginEditing{}, SeekTo{Time: 0}, EndEditing{})
		require.Equal(t, []string{"seek:0s"}, f.backend.Calls())

		// The error lands while the seek is still running
		f.send(errorOccurred{err: player.ErrPlaybackStalled})
		release()
		synctest.Wait()
		drainStates(f.sub)

		s := f.o.State()
		assert.True(t, s.HasError)
		assert.Zero(t, f.activeLoops())

		f.backend.SetPosition(9 * time.Second)
		f.tick(4)

		assert.Zero(t, f.activeLoops())
		assert.Zero(t, f.o.State().CurrentTime)
		for _, e := range drainStates(f.sub) {
			assert.NotEqual(t, "updatedCurrentTime", e.Intent)
		}
	})
}

func TestOrchestrator_PlayWhileLoadingWaitsForItem(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		release := f.backend.HoldLoads()

		f.send(Forward{})
		require.True(t, f.o.State().IsLoading)
		f.backend.ResetCalls()

		f.send(Play{})
		s := f.o.State()
		assert.True(t, s.IsPlaying)
		assert.Empty(t, f.backend.Calls(), "the previous item must not resume")
		assert.Zero(t, f.activeLoops())

		release()
		synctest.Wait()

		assert.Equal(t, []string{"play"}, f.backend.Calls())
		assert.Equal(t, 1, f.activeLoops())
		assert.False(t, f.o.State().IsLoading)
	})
}

func TestOrchestrator_StaleTickDropped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		// A tick queued by a loop that has since been replaced
		f.send(updatedCurrentTime{time: 30 * time.Second, gen: 0})
		assert.Zero(t, f.o.State().CurrentTime)
	})
}

func TestOrchestrator_Scrubbing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.send(BeginEditing{})
		assert.Zero(t, f.activeLoops())

		f.send(SeekTo{Time: 40 * time.Second}, SeekTo{Time: 42 * time.Second})
		assert.Equal(t, 42*time.Second, f.o.State().CurrentTime)
		assert.Empty(t, f.backend.Calls(), "scrubbing does not touch the backend")

		f.send(EndEditing{})
		assert.Equal(t, []string{"seek:42s"}, f.backend.Calls())
		assert.Equal(t, 1, f.activeLoops(), "polling resumes after the seek")

		f.tick(1)
		assert.Equal(t, 42*time.Second, f.o.State().CurrentTime)
	})
}

func TestOrchestrator_SeekToClamps(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.send(SeekTo{Time: -5 * time.Second})
		assert.Zero(t, f.o.State().CurrentTime)

		f.send(SeekTo{Time: 2 * time.Hour})
		assert.Equal(t, time.Minute, f.o.State().CurrentTime)
	})
}

func TestOrchestrator_SeekFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		f.backend.SetSeekError(errors.New("seek past end"))

		f.send(BeginEditing{}, SeekTo{Time: 10 * time.Second}, EndEditing{})

		s := f.o.State()
		assert.True(t, s.HasError)
		assert.Zero(t, f.activeLoops())
		e := <-f.sub.Error
		assert.ErrorIs(t, e.Err, player.ErrUnknown)
	})
}

func TestOrchestrator_FinishedPlaying_AdvancesChapter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.backend.SetPosition(time.Minute)
		f.tick(1)

		s := f.o.State()
		assert.Equal(t, 1, s.ChapterIndex)
		assert.True(t, s.IsPlaying)
		assert.Equal(t, []string{"pause", "load:ch2.mp3", "play"}, f.backend.Calls())
	})
}

func TestOrchestrator_FinishedPlaying_LastChapter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.backend.SetDuration(time.Minute + 500*time.Millisecond)
		f.start(t)
		f.send(Forward{}, Forward{})
		require.Equal(t, 2, f.o.State().ChapterIndex)
		f.backend.ResetCalls()

		// Inside the last whole second counts as the end
		f.backend.SetPosition(time.Minute + 200*time.Millisecond)
		f.tick(4)

		s := f.o.State()
		assert.Equal(t, 2, s.ChapterIndex)
		assert.Zero(t, s.CurrentTime)
		assert.False(t, s.IsPlaying)
		assert.Equal(t, []string{"seek:0s", "pause"}, f.backend.Calls())
		assert.Zero(t, f.activeLoops())
	})
}

func TestOrchestrator_FinishedPlaying_OncePerCrossing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		f.send(Forward{}, Forward{})
		drainStates(f.sub)

		f.backend.SetPosition(time.Minute)
		f.tick(1)
		f.send(Play{})
		f.backend.SetPosition(10 * time.Second)
		f.tick(2)
		f.backend.SetPosition(time.Minute)
		f.tick(2)

		finished := 0
		for _, e := range drainStates(f.sub) {
			if e.Intent == "finishedPlaying" {
				finished++
			}
		}
		assert.Equal(t, 2, finished)
		assert.Equal(t, 2, countCalls(f.backend.Calls(), "seek:0s"))
	})
}

func countCalls(calls []string, want string) int {
	n := 0
	for _, c := range calls {
		if c == want {
			n++
		}
	}
	return n
}

func TestOrchestrator_ErrorState(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.backend.Emit(player.ErrorEvent(player.ErrPlaybackStalled))
		synctest.Wait()

		s := f.o.State()
		assert.True(t, s.HasError)
		alert := s.PendingError.MustGet()
		assert.Equal(t, "Playback stalled.", alert.Message)
		assert.Zero(t, f.activeLoops())

		// Play is still accepted while the alert is up
		f.send(Play{})
		s = f.o.State()
		assert.True(t, s.IsPlaying)
		assert.True(t, s.HasError)
		assert.Equal(t, 1, f.activeLoops())

		f.send(CloseAlert{})
		s = f.o.State()
		assert.False(t, s.HasError)
		assert.False(t, s.PendingError.IsPresent())
	})
}

func TestOrchestrator_BackendEventsMirrorIntents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)

		f.backend.Emit(player.Event{Kind: player.EventPause})
		synctest.Wait()
		assert.False(t, f.o.State().IsPlaying)
		assert.Zero(t, f.activeLoops())

		f.backend.Emit(player.Event{Kind: player.EventPlay})
		synctest.Wait()
		assert.True(t, f.o.State().IsPlaying)
		assert.Equal(t, 1, f.activeLoops())

		assert.Equal(t, []string{"pause", "play"}, f.backend.Calls())
	})
}

func TestOrchestrator_MissingMedia(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		f.start(t)
		require.NoError(t, f.media.Remove("ch2.mp3"))

		f.send(Forward{})

		s := f.o.State()
		assert.Equal(t, 1, s.ChapterIndex)
		assert.False(t, s.IsLoading)
		assert.True(t, s.HasError)
		assert.Equal(t, []string{"pause"}, f.backend.Calls(), "load is not attempted")

		e := <-f.sub.Error
		assert.ErrorIs(t, e.Err, player.ErrResourceLoad)
		assert.ErrorIs(t, e.Err, catalog.ErrMediaNotFound)
	})
}

func TestOrchestrator_LoadFailure(t *testing.T) {
	tests := []struct {
		name    string
		loadErr error
		want    error
	}{
		{"plain error becomes decode failure", errors.New("garbage"), player.ErrResourceDecode},
		{"media error kept", player.NewError(player.KindResourceLoad, errors.New("eio")), player.ErrResourceLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				f := newFixture(t)
				defer f.o.Close()
				f.start(t)
				f.backend.SetLoadError("ch2.mp3", tt.loadErr)

				f.send(Forward{})

				s := f.o.State()
				assert.True(t, s.HasError)
				assert.False(t, s.IsLoading)
				assert.False(t, s.IsPlaying)
				e := <-f.sub.Error
				assert.ErrorIs(t, e.Err, tt.want)

				// Recovery: dismiss, then navigate
				f.send(CloseAlert{}, Backward{})
				s = f.o.State()
				assert.False(t, s.HasError)
				assert.True(t, s.IsPlaying)
				assert.Equal(t, 0, s.ChapterIndex)
			})
		})
	}
}

func TestOrchestrator_StaleLoadCompletionsDropped(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()
		release := f.backend.HoldLoads()

		f.send(OnAppear{}, Forward{}, Forward{})
		assert.True(t, f.o.State().IsLoading)

		release()
		synctest.Wait()

		s := f.o.State()
		assert.Equal(t, 2, s.ChapterIndex)
		assert.False(t, s.IsLoading)
		assert.True(t, s.IsPlaying)

		calls := f.backend.Calls()
		assert.Equal(t, 1, countCalls(calls, "play"))
		assert.Equal(t, "play", calls[len(calls)-1])
		assert.True(t, slices.Contains(calls, "load:ch3.mp3"))

		c := <-f.sub.ChapterChanged
		assert.Equal(t, 2, c.Index)
		assert.Empty(t, f.sub.ChapterChanged)
	})
}

func TestOrchestrator_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.start(t)

		require.NoError(t, f.o.Close())
		require.NoError(t, f.o.Close())
		synctest.Wait()

		<-f.sub.Done
		assert.True(t, f.backend.Closed())
		assert.Zero(t, f.activeLoops())

		// Intents after close are ignored
		before := f.o.State()
		f.o.Send(Pause{})
		synctest.Wait()
		assert.Equal(t, before, f.o.State())

		late := f.o.Subscribe()
		<-late.Done
	})
}

func TestOrchestrator_Unsubscribe(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		defer f.o.Close()

		f.o.Unsubscribe(f.sub)
		<-f.sub.Done

		f.send(OnAppear{})
		assert.Empty(t, f.sub.StateChanged)
	})
}
