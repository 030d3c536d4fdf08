// internal/player/mock.go
package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is a test double for Backend. It records calls and lets tests
// control load results, positions and backend events.
type Mock struct {
	mu        sync.Mutex
	calls     []string
	state     State
	rate      float64
	position  time.Duration
	duration  time.Duration
	configErr error
	loadErr   map[string]error
	seekErr   error
	loadGate  chan struct{}
	seekGate  chan struct{}
	events    chan Event
	closed    bool
}

// NewMock creates a mock backend with a 1 minute item duration.
func NewMock() *Mock {
	return &Mock{
		state:    Empty,
		rate:     1.0,
		duration: time.Minute,
		loadErr:  make(map[string]error),
		events:   make(chan Event, eventBufferSize),
	}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) ConfigureSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("configure")
	return m.configErr
}

func (m *Mock) Load(ctx context.Context, ref string) error {
	m.mu.Lock()
	m.record("load:" + ref)
	gate := m.loadGate
	err := m.loadErr[ref]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Paused
	m.position = 0
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	if m.state != Empty {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(fmt.Sprintf("rate:%g", rate))
	m.rate = rate
}

func (m *Mock) SkipRelative(delta time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("skip:" + delta.String())
	m.position = min(max(m.position+delta, 0), m.duration)
}

func (m *Mock) SeekTo(ctx context.Context, pos time.Duration) error {
	m.mu.Lock()
	m.record("seek:" + pos.String())
	gate := m.seekGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = min(max(pos, 0), m.duration)
	return nil
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Empty
	return nil
}

// Test helpers

// Calls returns the recorded calls in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls forgets the recorded calls.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) SetConfigureError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configErr = err
}

// SetLoadError makes loads of ref fail with err.
func (m *Mock) SetLoadError(ref string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr[ref] = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

// HoldLoads makes Load block until the returned function is called.
func (m *Mock) HoldLoads() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.loadGate = gate
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.loadGate = nil
			m.mu.Unlock()
			close(gate)
		})
	}
}

// HoldSeeks makes SeekTo block until the returned function is called.
func (m *Mock) HoldSeeks() (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.seekGate = gate
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.seekGate = nil
			m.mu.Unlock()
			close(gate)
		})
	}
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// Emit sends a backend event as if the backend raised it.
func (m *Mock) Emit(e Event) {
	m.events <- e
}
