package playback

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is the polling loop period.
const DefaultPollInterval = 250 * time.Millisecond

// poller owns the single polling loop. Start and stop are called from the
// orchestrator's run goroutine only.
//
// Every start bumps gen. Updates carry the gen of the loop that produced
// them, and the orchestrator drops those whose gen is not current, so a
// cancelled loop can never mutate state even if a tick was already queued.
type poller struct {
	interval time.Duration
	sample   func() time.Duration
	send     func(Intent)

	parent  context.Context
	cancel  context.CancelFunc
	gen     uint64
	active  bool
	running atomic.Int32
}

func newPoller(
	parent context.Context,
	interval time.Duration,
	sample func() time.Duration,
	send func(Intent),
) *poller {
	return &poller{
		parent:   parent,
		interval: interval,
		sample:   sample,
		send:     send,
	}
}

// start cancels any running loop and starts a new one.
func (p *poller) start() {
	p.stop()

	ctx, cancel := context.WithCancel(p.parent)
	p.gen++
	p.cancel = cancel
	p.active = true

	p.running.Add(1)
	go p.loop(ctx, p.gen)
}

// stop cancels the running loop, if any.
func (p *poller) stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.active = false
}

// current reports whether gen belongs to the active loop.
func (p *poller) current(gen uint64) bool {
	return p.active && gen == p.gen
}

func (p *poller) loop(ctx context.Context, gen uint64) {
	defer p.running.Add(-1)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t := p.sample()
			if ctx.Err() != nil {
				return
			}
			p.send(updatedCurrentTime{time: t, gen: gen})
		}
	}
}
