package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const appName = "keypoint"

// Defaults applied when a value is missing or invalid.
const (
	DefaultSkipBackward = 5 * time.Second
	DefaultSkipForward  = 10 * time.Second
	DefaultPollInterval = 250 * time.Millisecond
	DefaultStallTimeout = 5 * time.Second
	DefaultSampleRate   = 44100
	DefaultLocale       = "en"
	DefaultLogLevel     = "info"
)

type Config struct {
	MediaDir string `koanf:"media_dir"` // directory chapter media references are resolved against; empty means cwd
	Catalog  string `koanf:"catalog"`   // chapter catalog TOML; empty means the built-in book
	Locale   string `koanf:"locale"`    // message language, e.g. "en", "fr"
	Icons    string `koanf:"icons"`     // transport glyphs: "unicode" (default), "nerd" or "none"

	Playback     PlaybackConfig     `koanf:"playback"`
	Log          LogConfig          `koanf:"log"`
	Integrations IntegrationsConfig `koanf:"integrations"`
}

// PlaybackConfig holds player timing settings. Durations are Go duration
// strings ("5s", "250ms").
type PlaybackConfig struct {
	SkipBackward time.Duration `koanf:"skip_backward"`
	SkipForward  time.Duration `koanf:"skip_forward"`
	PollInterval time.Duration `koanf:"poll_interval"`
	StallTimeout time.Duration `koanf:"stall_timeout"` // 0 disables stall detection
	SampleRate   int           `koanf:"sample_rate"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Level   string `koanf:"level"`   // logrus level name (default: info)
	JSON    bool   `koanf:"json"`
}

// IntegrationsConfig toggles desktop integrations.
type IntegrationsConfig struct {
	MPRIS         *bool `koanf:"mpris"`         // default: true
	Notifications *bool `koanf:"notifications"` // default: true
}

// Load reads the configuration files. The XDG config file is read first,
// then ./config.toml (last wins). A non-empty path replaces both.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	paths := getConfigPaths()
	if path != "" {
		paths = []string{expandPath(path)}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if path != "" {
				return nil, err
			}
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Locale: DefaultLocale,
		Playback: PlaybackConfig{
			StallTimeout: DefaultStallTimeout, // an explicit "0s" disables the watchdog
		},
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MediaDir = expandPath(cfg.MediaDir)
	cfg.Catalog = expandPath(cfg.Catalog)
	cfg.Locale = strings.TrimSpace(cfg.Locale)
	if cfg.Locale == "" {
		cfg.Locale = DefaultLocale
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/keypoint/config.toml
	if p, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml")); err == nil {
		paths = append(paths, p)
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.SkipBackward <= 0 {
		cfg.SkipBackward = DefaultSkipBackward
	}
	if cfg.SkipForward <= 0 {
		cfg.SkipForward = DefaultSkipForward
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.StallTimeout < 0 {
		cfg.StallTimeout = DefaultStallTimeout
	}
	if cfg.SampleRate < 8000 || cfg.SampleRate > 192000 {
		cfg.SampleRate = DefaultSampleRate
	}

	return cfg
}

// LogEnabled returns true unless logging was turned off.
func (c *Config) LogEnabled() bool {
	return c.Log.Enabled == nil || *c.Log.Enabled
}

// LogLevel returns the configured level, or info if it does not parse.
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// MPRISEnabled returns true unless MPRIS was turned off.
func (c *Config) MPRISEnabled() bool {
	return c.Integrations.MPRIS == nil || *c.Integrations.MPRIS
}

// NotificationsEnabled returns true unless notifications were turned off.
func (c *Config) NotificationsEnabled() bool {
	return c.Integrations.Notifications == nil || *c.Integrations.Notifications
}
