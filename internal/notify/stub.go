//go:build !linux

package notify

// New returns a notifier that drops everything on non-Linux platforms.
func New() (Notifier, error) {
	return nopNotifier{}, nil
}
