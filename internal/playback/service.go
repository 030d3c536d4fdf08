package playback

// Service is the playback contract consumed by presentation layers.
type Service interface {
	// Send queues an intent. It never blocks; intents are applied one at a
	// time in the order they were sent.
	Send(i Intent)

	// State returns the current snapshot.
	State() PlayerState

	// Subscribe creates a new event subscription.
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)

	// Close stops the session and releases the backend.
	Close() error
}

// Verify Orchestrator implements Service at compile time.
var _ Service = (*Orchestrator)(nil)
