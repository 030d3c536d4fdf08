// Package notify sends desktop notifications when a new key point starts
// playing and when playback fails.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Categories tag notifications so the desktop can group or filter them.
const (
	CategoryChapter = "x-keypoint.chapter"
	CategoryError   = "x-keypoint.error"
)

// Notification is one desktop notification.
type Notification struct {
	Title      string // summary, required
	Body       string
	Icon       string // image path or icon name
	Category   string
	Timeout    int32 // ms; -1 lets the server decide, 0 never expires
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its server ID. A notifier without a
	// notification server returns 0 and no error.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// nopNotifier is used when no notification server is reachable.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
