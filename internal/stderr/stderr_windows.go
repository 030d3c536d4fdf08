//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the console.
package stderr

import "github.com/sirupsen/logrus"

// Start does nothing on Windows.
func Start(_ logrus.FieldLogger) error {
	return nil
}

// Stop does nothing on Windows.
func Stop() {}
