package main

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/keypoint/internal/app"
	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/config"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/icons"
	"github.com/llehouerou/keypoint/internal/logging"
	"github.com/llehouerou/keypoint/internal/mpris"
	"github.com/llehouerou/keypoint/internal/notify"
	"github.com/llehouerou/keypoint/internal/playback"
	"github.com/llehouerou/keypoint/internal/player"
	"github.com/llehouerou/keypoint/internal/stderr"
)

type flags struct {
	configPath string
	mediaDir   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:          "keypoint",
		Short:        "Listen to the key points of a book, one chapter at a time",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlayer(f)
		},
	}
	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", "",
		"config file (default: $XDG_CONFIG_HOME/keypoint/config.toml)")
	root.PersistentFlags().StringVarP(&f.mediaDir, "media-dir", "m", "",
		"directory chapter media is read from (overrides media_dir)")

	root.AddCommand(
		&cobra.Command{
			Use:   "play",
			Short: "Open the player (default)",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runPlayer(f)
			},
		},
		newChaptersCmd(&f),
	)
	return root
}

// session is what every command needs: configuration and the catalog
// bound to its media directory.
type session struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	mediaDir string
}

func openSession(f flags) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, errmsg.WrapWith(errmsg.OpConfigLoad, f.configPath, err)
	}

	mediaDir := cfg.MediaDir
	if f.mediaDir != "" {
		mediaDir = f.mediaDir
	}
	if mediaDir == "" {
		mediaDir = "."
	}
	if abs, err := filepath.Abs(mediaDir); err == nil {
		mediaDir = abs
	}
	media := afero.NewBasePathFs(afero.NewOsFs(), mediaDir)

	c := catalog.Default(media)
	if cfg.Catalog != "" {
		if c, err = catalog.Load(cfg.Catalog, media); err != nil {
			return nil, errmsg.WrapWith(errmsg.OpCatalogLoad, cfg.Catalog, err)
		}
	}

	return &session{cfg: cfg, catalog: c, mediaDir: mediaDir}, nil
}

func runPlayer(f flags) error {
	s, err := openSession(f)
	if err != nil {
		return err
	}
	cfg := s.cfg

	logger, logCloser, err := logging.Setup(afero.NewOsFs(), logging.Options{
		Enabled: cfg.LogEnabled(),
		Level:   cfg.LogLevel(),
		JSON:    cfg.Log.JSON,
	}, time.Now())
	if err != nil {
		return errmsg.Wrap(errmsg.OpLogSetup, err)
	}
	defer logCloser.Close()

	// ALSA and oto write to fd 2, which would corrupt the TUI
	if err := stderr.Start(logger); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpStderrCapture, err))
	}
	defer stderr.Stop()

	icons.Init(cfg.Icons)
	pb := cfg.GetPlaybackConfig()
	loc := errmsg.NewLocalizer(cfg.Locale)
	logger.WithFields(logrus.Fields{
		"media_dir": s.mediaDir,
		"chapters":  s.catalog.Len(),
		"locale":    loc.Language().String(),
	}).Info("starting session")

	backend := player.New(
		player.WithFS(s.catalog.Media()),
		player.WithLogger(logger),
		player.WithSampleRate(pb.SampleRate),
		player.WithStallTimeout(pb.StallTimeout),
	)
	o := playback.New(backend, s.catalog,
		playback.WithLogger(logger),
		playback.WithLocalizer(loc),
		playback.WithSkip(pb.SkipBackward, pb.SkipForward),
		playback.WithPollInterval(pb.PollInterval),
	)
	defer o.Close()

	var poster string
	if cfg.MPRISEnabled() || cfg.NotificationsEnabled() {
		poster = notify.PosterPath(s.catalog, s.mediaDir)
	}

	opts := []app.Option{
		app.WithSubscription(o.Subscribe()),
		app.WithLocalizer(loc),
		app.WithLogger(logger),
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(o, loc, poster)
		if err != nil {
			logger.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			logger.Warn(errmsg.Format(errmsg.OpNotify, err))
		} else {
			opts = append(opts, app.WithNotifier(n, poster))
		}
	}

	p := tea.NewProgram(app.New(o, opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	return nil
}
