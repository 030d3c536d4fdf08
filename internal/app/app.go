// Package app is the terminal presentation of a playback session: it
// renders state snapshots and turns key presses into intents.
package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/keypoint/internal/catalog"
	"github.com/llehouerou/keypoint/internal/errmsg"
	"github.com/llehouerou/keypoint/internal/keymap"
	"github.com/llehouerou/keypoint/internal/notify"
	"github.com/llehouerou/keypoint/internal/playback"
	"github.com/llehouerou/keypoint/internal/ui/styles"
)

// Controller is the playback session the model drives.
type Controller interface {
	Send(i playback.Intent)
	State() playback.PlayerState
	Chapter() catalog.Chapter
	Catalog() *catalog.Catalog
}

// Model is the root bubbletea model.
type Model struct {
	ctrl     Controller
	sub      *playback.Subscription
	keys     *keymap.Resolver
	loc      *errmsg.Localizer
	log      logrus.FieldLogger
	notifier notify.Notifier
	icon     string

	state   playback.PlayerState
	chapter catalog.Chapter

	help     help.Model
	showHelp bool
	spinner  spinner.Model

	scrubbing    bool
	scrubTarget  playback.SeekTo
	scrubVersion int

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithSubscription sets the event source that drives re-rendering.
func WithSubscription(sub *playback.Subscription) Option {
	return func(m *Model) { m.sub = sub }
}

// WithLocalizer sets the localizer for labels and alerts.
func WithLocalizer(l *errmsg.Localizer) Option {
	return func(m *Model) { m.loc = l }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) { m.log = l }
}

// WithNotifier enables desktop notifications with icon as their image.
func WithNotifier(n notify.Notifier, icon string) Option {
	return func(m *Model) {
		m.notifier = n
		m.icon = icon
	}
}

// New creates the model for ctrl's session.
func New(ctrl Controller, opts ...Option) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.T().S().Spinner

	m := Model{
		ctrl:    ctrl,
		keys:    keymap.NewResolver(keymap.All()),
		log:     logrus.StandardLogger(),
		state:   ctrl.State(),
		chapter: ctrl.Chapter(),
		help:    help.New(),
		spinner: sp,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.loc == nil {
		m.loc = errmsg.NewLocalizer("")
	}
	return m
}

// Init starts the session and the event watcher.
func (m Model) Init() tea.Cmd {
	m.ctrl.Send(playback.OnAppear{})
	return tea.Batch(m.watchEvents(), m.spinner.Tick)
}

// State returns the snapshot the model last rendered.
func (m Model) State() playback.PlayerState {
	return m.state
}
