package playback

const eventBufferSize = 64

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged   <-chan StateChange
	ChapterChanged <-chan ChapterChange
	Error          <-chan ErrorEvent
	Done           <-chan struct{}

	stateCh   chan StateChange
	chapterCh chan ChapterChange
	errorCh   chan ErrorEvent
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:   make(chan StateChange, eventBufferSize),
		chapterCh: make(chan ChapterChange, eventBufferSize),
		errorCh:   make(chan ErrorEvent, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.ChapterChanged = s.chapterCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// Sends never block the orchestrator: a subscriber that stops reading
// loses events once its buffer is full.

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendChapter(e ChapterChange) {
	select {
	case s.chapterCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
