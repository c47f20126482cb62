package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/five82/scout/internal/logtail"
	"github.com/five82/scout/internal/prefs"
	"github.com/five82/scout/internal/state"
)

// View is the content shown below the header.
type View int

const (
	ViewDebug View = iota
	ViewLogs
)

const logTailLines = 400

// Backend is the part of the service the dashboard drives.
type Backend interface {
	DiscoverConnection(ctx context.Context) state.Connection
	ConnectionDebug(ctx context.Context) string
	ClearImageCache() error
	ImageSourceBase() string
	CacheDir() string
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Backend   Backend
	Store     *state.Store
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Logger    log.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	backend   Backend
	store     *state.Store
	logPath   string
	prefsPath string
	pollTick  time.Duration
	logger    log.Logger
	keys      keyMap

	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	snapshot state.Snapshot
	debug    string
	logLines []logtail.Line
	flash    string

	viewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return Model{
		ctx:         ctx,
		backend:     opts.Backend,
		store:       opts.Store,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		logger:      log.With(logger, "component", "ui"),
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewDebug,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick), m.loadDebugCmd()}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.viewportHeight())
			m.ready = true
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = m.viewportHeight()
		m.syncViewport()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		if m.currentView == ViewLogs {
			cmds = append(cmds, m.loadLogsCmd())
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case debugMsg:
		m.debug = string(msg)
		m.syncViewport()
		return m, nil

	case logsMsg:
		if msg.err != nil {
			level.Warn(m.logger).Log("msg", "read log", "err", msg.err)
			m.flash = "Log unreadable: " + msg.err.Error()
			return m, nil
		}
		follow := m.viewport.AtBottom()
		m.logLines = msg.lines
		m.syncViewport()
		if follow {
			m.viewport.GotoBottom()
		}
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.flash = "Clear failed: " + msg.err.Error()
		} else {
			m.flash = "Image cache cleared"
		}
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			level.Warn(m.logger).Log("msg", "save theme", "err", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.flash = ""
		cmds := []tea.Cmd{m.refreshCmd()}
		if m.currentView == ViewDebug {
			cmds = append(cmds, m.loadDebugCmd())
		} else {
			cmds = append(cmds, m.loadLogsCmd())
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.ViewDebug):
		m.currentView = ViewDebug
		m.syncViewport()
		m.viewport.GotoTop()
		return m, m.loadDebugCmd()

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, m.loadLogsCmd()

	case key.Matches(msg, m.keys.ClearCache):
		m.flash = "Clearing image cache..."
		return m, m.clearCacheCmd()

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type debugMsg string

type logsMsg struct {
	lines []logtail.Line
	err   error
}

type clearedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, backend, store := m.ctx, m.backend, m.store
	return func() tea.Msg {
		conn := backend.DiscoverConnection(ctx)
		if store == nil {
			return nil
		}
		store.Update(&conn, nil)
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) loadDebugCmd() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		return debugMsg(backend.ConnectionDebug(ctx))
	}
}

func (m Model) loadLogsCmd() tea.Cmd {
	path := m.logPath
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		lines, err := logtail.ReadRecords(path, logTailLines)
		return logsMsg{lines: lines, err: err}
	}
}

func (m Model) clearCacheCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		return clearedMsg{err: backend.ClearImageCache()}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if err != nil && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
