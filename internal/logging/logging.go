// Package logging sets up the log file. The terminal UI owns stdout and
// stderr, so everything is written to a daily file under the XDG state dir.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const appName = "keypoint"

// Options controls the log output.
type Options struct {
	Enabled bool
	Level   logrus.Level
	JSON    bool
	Dir     string // empty means $XDG_STATE_HOME/keypoint
}

// Dir returns the default log directory.
func Dir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// FileName returns the log file name for day t.
func FileName(t time.Time) string {
	return t.Format("2006-01-02") + ".log"
}

// Setup returns a logger writing to today's log file on fs. When logging
// is disabled the logger discards everything. The returned closer releases
// the file.
func Setup(fs afero.Fs, opts Options, now time.Time) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(opts.Level)

	if !opts.Enabled {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = Dir()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
