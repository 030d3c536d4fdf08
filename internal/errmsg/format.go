// Package errmsg turns failures into messages a listener can read: startup
// and integration errors through Format, playback errors through localized
// templates.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Startup
	OpConfigLoad    Op = "load configuration"
	OpCatalogLoad   Op = "load chapter catalog"
	OpLogSetup      Op = "set up logging"
	OpStderrCapture Op = "capture audio library output"
	OpInitialize    Op = "start the player"

	// Integrations
	OpMPRISStart Op = "start media controls"
	OpNotify     Op = "send notification"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming what the operation was
// applied to.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is a failed operation. Its message is the FormatWith rendering.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string { return FormatWith(e.Op, e.Context, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err with op. It returns nil if err is nil.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith annotates err with op and context. It returns nil if err is nil.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}
