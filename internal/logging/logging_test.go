package logging

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFileName(t *testing.T) {
	assert.Equal(t, "2026-03-14.log", FileName(day))
}

func TestSetup_WritesDailyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger, closer, err := Setup(fs, Options{
		Enabled: true,
		Level:   logrus.DebugLevel,
		Dir:     "/state/keypoint",
	}, day)
	require.NoError(t, err)

	logger.WithField("chapter", 2).Debug("intent applied")
	require.NoError(t, closer.Close())

	data, err := afero.ReadFile(fs, filepath.Join("/state/keypoint", "2026-03-14.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "intent applied")
	assert.Contains(t, string(data), "chapter=2")
}

func TestSetup_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger, closer, err := Setup(fs, Options{
		Enabled: true,
		Level:   logrus.InfoLevel,
		JSON:    true,
		Dir:     "/logs",
	}, day)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.WithField("kind", "playback stalled").Warn("playback error")
	require.NoError(t, closer.Close())

	data, err := afero.ReadFile(fs, "/logs/2026-03-14.log")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug entries are below the level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "playback error", entry["msg"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "playback stalled", entry["kind"])
}

func TestSetup_AppendsToExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/logs/2026-03-14.log", []byte("earlier\n"), 0o644))

	logger, closer, err := Setup(fs, Options{Enabled: true, Level: logrus.InfoLevel, Dir: "/logs"}, day)
	require.NoError(t, err)
	logger.Info("later")
	require.NoError(t, closer.Close())

	data, err := afero.ReadFile(fs, "/logs/2026-03-14.log")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "earlier\n"))
	assert.Contains(t, string(data), "later")
}

func TestSetup_Disabled(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger, closer, err := Setup(fs, Options{Enabled: false, Level: logrus.InfoLevel, Dir: "/logs"}, day)
	require.NoError(t, err)
	logger.Error("dropped")
	require.NoError(t, closer.Close())

	exists, err := afero.DirExists(fs, "/logs")
	require.NoError(t, err)
	assert.False(t, exists)
}
