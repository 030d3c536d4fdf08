package playback

import (
	"context"
	"errors"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/player"
)

// apply is the transition function. It runs on the run goroutine with
// o.mu held, mutates o.state, issues backend commands and returns the
// intents to apply next.
func (o *Orchestrator) apply(i Intent) []Intent {
	st := &o.state

	switch in := i.(type) {
	case OnAppear:
		if err := o.backend.ConfigureSession(); err != nil {
			return follow(errorOccurred{err: player.AsMediaError(err, player.KindSessionConfig)})
		}
		if !o.forwarding {
			o.forwarding = true
			o.wg.Add(1)
			go o.forwardEvents()
		}
		return follow(fetchResource{})

	case fetchResource:
		if st.IsPlaying {
			o.pause()
		}
		st.IsLoading = true
		st.CurrentTime = 0
		o.loadToken++

		ref, err := o.catalog.Resolve(o.catalog.At(st.ChapterIndex))
		if err != nil {
			st.IsLoading = false
			return follow(errorOccurred{err: player.NewError(player.KindResourceLoad, err)})
		}
		o.load(o.loadToken, ref)

	case readyToPlay:
		if in.token != o.loadToken {
			o.log.WithField("token", in.token).Debug("stale load completion dropped")
			return nil
		}
		st.Duration = o.backend.Duration()
		if st.Duration <= 0 {
			st.Duration = DurationPlaceholder
		}
		st.IsLoading = false
		o.crossed = false
		o.announce()
		return follow(Play{})

	case loadFailed:
		if in.token != o.loadToken {
			return nil
		}
		st.IsLoading = false
		return follow(errorOccurred{err: player.AsMediaError(in.err, player.KindResourceDecode)})

	case Play:
		st.IsPlaying = true
		if st.IsLoading {
			// readyToPlay plays the new item
			return nil
		}
		o.backend.Play()
		o.poll.start()

	case Pause:
		o.pause()

	case Backward:
		if !st.HasBackward() {
			return nil
		}
		st.ChapterIndex--
		return follow(fetchResource{})

	case Forward:
		if !st.HasForward() {
			return nil
		}
		st.ChapterIndex++
		return follow(fetchResource{})

	case GoBackward:
		o.backend.SkipRelative(-o.skipBackward)

	case GoForward:
		o.backend.SkipRelative(o.skipForward)

	case CycleSpeed:
		st.Speed = st.Speed.Next()
		o.backend.SetRate(st.Speed.Rate())

	case SeekTo:
		st.CurrentTime = min(max(in.Time, 0), st.Duration)

	case BeginEditing:
		o.poll.stop()

	case EndEditing:
		o.seek(st.CurrentTime, runTimer{})

	case runTimer:
		if st.IsPlaying {
			o.poll.start()
		}

	case updatedCurrentTime:
		if !o.poll.current(in.gen) || st.IsLoading {
			return nil
		}
		st.CurrentTime = max(in.time, 0)
		if st.CurrentTime.Truncate(time.Second) < st.Duration.Truncate(time.Second) {
			o.crossed = false
			return nil
		}
		if o.crossed {
			return nil
		}
		o.crossed = true
		return follow(finishedPlaying{})

	case finishedPlaying:
		st.CurrentTime = 0
		if st.HasForward() {
			return follow(Forward{})
		}
		o.poll.stop()
		o.seek(0, Pause{})

	case seekCompleted:
		if in.token != o.seekToken {
			o.log.WithField("token", in.token).Debug("stale seek completion dropped")
			return nil
		}
		if in.err != nil {
			return follow(errorOccurred{err: player.AsMediaError(in.err, player.KindUnknown)})
		}
		if in.then != nil {
			return follow(in.then)
		}

	case errorOccurred:
		o.poll.stop()
		o.seekToken++
		alert := Alert{
			Title:   o.loc.Sprintf(errmsg.KeyAlertTitle),
			Message: in.err.Describe(o.loc),
		}
		st.HasError = true
		st.PendingError = mo.Some(alert)

		o.log.WithFields(logrus.Fields{
			"kind":    in.err.Kind.String(),
			"chapter": st.ChapterIndex,
		}).WithError(in.err).Warn("playback error")
		o.publishError(ErrorEvent{Alert: alert, Err: in.err})

	case CloseAlert:
		st.HasError = false
		st.PendingError = mo.None[Alert]()
	}
	return nil
}

func follow(i Intent) []Intent {
	return []Intent{i}
}

func (o *Orchestrator) pause() {
	o.state.IsPlaying = false
	o.backend.Pause()
	o.poll.stop()
}

// load loads ref in the background and reports back with token.
func (o *Orchestrator) load(token uint64, ref string) {
	o.async(func(ctx context.Context) {
		err := o.backend.Load(ctx, ref)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			o.Send(loadFailed{token: token, err: err})
			return
		}
		o.Send(readyToPlay{token: token})
	})
}

// seek seeks the backend in the background, then applies then. An error
// raised before the seek completes discards then.
func (o *Orchestrator) seek(pos time.Duration, then Intent) {
	token := o.seekToken
	o.async(func(ctx context.Context) {
		err := o.backend.SeekTo(ctx, pos)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		o.Send(seekCompleted{token: token, err: err, then: then})
	})
}

// announce publishes a ChapterChange if the current chapter differs from
// the last announced one.
func (o *Orchestrator) announce() {
	idx := o.state.ChapterIndex
	if idx == o.announced {
		return
	}
	o.announced = idx
	o.publishChapter(ChapterChange{
		Chapter: o.catalog.At(idx),
		Index:   idx,
		Count:   o.state.ChapterCount,
	})
}
