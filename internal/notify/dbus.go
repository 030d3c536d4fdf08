//go:build linux

package notify

import (
	"errors"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	appName      = "Keypoint"
	desktopEntry = "keypoint"
)

var errNoTitle = errors.New("notification has no title")

// dbusNotifier sends notifications via D-Bus. Consecutive notifications
// replace each other so only the latest chapter or error stays visible.
type dbusNotifier struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	lastID uint32
}

// New creates a Notifier that sends desktop notifications via D-Bus.
// Returns a no-op notifier if D-Bus is unavailable.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // no session bus: notifications are optional
	}
	return &dbusNotifier{conn: conn, obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}, nil
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	if notif.Title == "" {
		return 0, errNoTitle
	}
	replaces := notif.ReplacesID
	if replaces == 0 {
		replaces = n.lastID
	}

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify", 0,
		appName, replaces, notif.Icon, notif.Title, notif.Body,
		[]string{}, hints(notif), notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	n.lastID = id
	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	if id == n.lastID {
		n.lastID = 0
	}
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}

// hints builds the freedesktop hints of notif.
func hints(notif Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if notif.Category != "" {
		h["category"] = dbus.MakeVariant(notif.Category)
	}
	return h
}
