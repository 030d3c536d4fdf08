package playback

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/player"
)

// Default relative skip distances.
const (
	DefaultSkipBackward = 5 * time.Second
	DefaultSkipForward  = 10 * time.Second
)

// Orchestrator owns the playback state of one session. It applies intents
// one at a time on a single goroutine and drives the backend accordingly.
type Orchestrator struct {
	backend player.Backend
	catalog *catalog.Catalog

	log          logrus.FieldLogger
	loc          *errmsg.Localizer
	skipBackward time.Duration
	skipForward  time.Duration
	pollInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	qmu   sync.Mutex
	queue []Intent
	wake  chan struct{}

	mu    sync.RWMutex
	state PlayerState

	// Owned by the run goroutine.
	poll       *poller
	loadToken  uint64
	seekToken  uint64
	crossed    bool
	announced  int
	forwarding bool

	subs   []*Subscription
	subsMu sync.RWMutex

	closeOnce sync.Once
	closeErr  error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithLocalizer sets the localizer used for alert texts.
func WithLocalizer(l *errmsg.Localizer) Option {
	return func(o *Orchestrator) { o.loc = l }
}

// WithSkip sets the relative skip distances. Non-positive values keep the
// defaults.
func WithSkip(backward, forward time.Duration) Option {
	return func(o *Orchestrator) {
		if backward > 0 {
			o.skipBackward = backward
		}
		if forward > 0 {
			o.skipForward = forward
		}
	}
}

// WithPollInterval sets the polling loop period.
func WithPollInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// New creates an orchestrator for the chapters of c played through backend.
// Nothing happens until OnAppear is sent.
func New(backend player.Backend, c *catalog.Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:      backend,
		catalog:      c,
		log:          logrus.StandardLogger(),
		skipBackward: DefaultSkipBackward,
		skipForward:  DefaultSkipForward,
		pollInterval: DefaultPollInterval,
		wake:         make(chan struct{}, 1),
		state:        initialState(c.Len()),
		announced:    -1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.loc == nil {
		o.loc = errmsg.NewLocalizer("")
	}

	o.ctx, o.cancel = context.WithCancel(context.Background())
	o.poll = newPoller(o.ctx, o.pollInterval, backend.Position, o.Send)

	o.wg.Add(1)
	go o.run()
	return o
}

// Send queues an intent. It never blocks. Intents sent after Close are
// dropped.
func (o *Orchestrator) Send(i Intent) {
	if o.ctx.Err() != nil {
		return
	}
	o.qmu.Lock()
	o.queue = append(o.queue, i)
	o.qmu.Unlock()

	select {
	case o.wake <- struct{}{}:
	default:
	}
}

// State returns the current snapshot.
func (o *Orchestrator) State() PlayerState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Chapter returns the chapter at the current index.
func (o *Orchestrator) Chapter() catalog.Chapter {
	return o.catalog.At(o.State().ChapterIndex)
}

// Catalog returns the chapters this session plays.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Subscribe creates a new event subscription.
func (o *Orchestrator) Subscribe() *Subscription {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	sub := newSubscription()
	if o.ctx.Err() != nil {
		sub.close()
		return sub
	}
	o.subs = append(o.subs, sub)
	return sub
}

// Unsubscribe removes sub and closes its Done channel.
func (o *Orchestrator) Unsubscribe(sub *Subscription) {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	for i, s := range o.subs {
		if s == sub {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			sub.close()
			return
		}
	}
}

// Close cancels the polling loop and pending backend work, stops applying
// intents, closes subscriptions and releases the backend.
func (o *Orchestrator) Close() error {
	o.closeOnce.Do(func() {
		o.cancel()
		o.wg.Wait()
		o.poll.stop()

		o.subsMu.Lock()
		for _, sub := range o.subs {
			sub.close()
		}
		o.subs = nil
		o.subsMu.Unlock()

		o.closeErr = o.backend.Close()
	})
	return o.closeErr
}

func (o *Orchestrator) run() {
	defer o.wg.Done()
	for {
		select {
		case <-o.ctx.Done():
			return
		case <-o.wake:
		}
		for {
			i, ok := o.dequeue()
			if !ok {
				break
			}
			if o.ctx.Err() != nil {
				return
			}
			o.dispatch(i)
		}
	}
}

func (o *Orchestrator) dequeue() (Intent, bool) {
	o.qmu.Lock()
	defer o.qmu.Unlock()
	if len(o.queue) == 0 {
		return nil, false
	}
	i := o.queue[0]
	o.queue[0] = nil
	o.queue = o.queue[1:]
	return i, true
}

// dispatch applies i, publishes the resulting change, then applies its
// follow-ups depth-first before the next queued intent.
func (o *Orchestrator) dispatch(i Intent) {
	o.mu.Lock()
	prev := o.state
	follow := o.apply(i)
	cur := o.state
	o.mu.Unlock()

	o.trace(i, cur)
	if cur != prev {
		o.publishState(StateChange{Intent: i.intentName(), Previous: prev, Current: cur})
	}
	for _, f := range follow {
		o.dispatch(f)
	}
}

func (o *Orchestrator) trace(i Intent, st PlayerState) {
	entry := o.log.WithFields(logrus.Fields{
		"intent":  i.intentName(),
		"chapter": st.ChapterIndex,
	})
	if _, ok := i.(updatedCurrentTime); ok {
		entry.WithField("time", st.CurrentTime).Trace("intent applied")
		return
	}
	entry.Debug("intent applied")
}

// async runs f off the run goroutine. f must report back through Send.
func (o *Orchestrator) async(f func(ctx context.Context)) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		f(o.ctx)
	}()
}

// forwardEvents turns backend events into intents.
func (o *Orchestrator) forwardEvents() {
	defer o.wg.Done()
	events := o.backend.Events()
	for {
		select {
		case <-o.ctx.Done():
			return
		case e := <-events:
			switch e.Kind {
			case player.EventPlay:
				o.Send(Play{})
			case player.EventPause:
				o.Send(Pause{})
			case player.EventError:
				err := e.Err
				if err == nil {
					err = player.ErrUnknown
				}
				o.Send(errorOccurred{err: err})
			}
		}
	}
}

func (o *Orchestrator) publishState(e StateChange) {
	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		sub.sendState(e)
	}
}

func (o *Orchestrator) publishChapter(e ChapterChange) {
	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		sub.sendChapter(e)
	}
}

func (o *Orchestrator) publishError(e ErrorEvent) {
	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		sub.sendError(e)
	}
}
