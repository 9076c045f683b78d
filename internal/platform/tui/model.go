package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/loop"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/storage"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// chromeRows is the number of rows below the map: HUD and help.
const chromeRows = 2

// GameOptions configures a GameModel.
type GameOptions struct {
	Session  *netsync.Session
	Store    *storage.Store // nil disables result recording
	PlayerID string
	TickRate int
	SeedWait time.Duration // how long a peer waits for the host's seed
	Width    int
	Height   int
	Link     io.Closer // closed when the player leaves; may be nil
	Logger   *log.Logger
	Note     string // shown after the HUD, e.g. the join code

	// Embedded marks a model hosted by a menu: leaving returns to the
	// menu instead of quitting the program.
	Embedded bool
}

// frame holds the latest rendered world. It is shared between copies of
// the model because the scheduler renders through a closure.
type frame struct {
	world *world.World
}

// GameModel drives a session from Bubble Tea ticks.
type GameModel struct {
	opts     GameOptions
	session  *netsync.Session
	sched    *loop.Scheduler
	controls *Controls
	keys     GameKeyMap
	help     help.Model
	screen   *core.Screen
	frame    *frame
	logger   *log.Logger

	seedWaitTicks int
	waited        int

	quitting   bool
	backToMenu bool
	finished   bool
	saved      bool
}

// NewGameModel creates a model for opts.Session.
func NewGameModel(opts GameOptions) GameModel {
	if opts.TickRate < 1 {
		opts.TickRate = loop.DefaultTickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}

	keys := DefaultGameKeyMap()
	controls := NewControls(keys)
	f := &frame{world: opts.Session.Snapshot()}
	screen := core.NewScreen(opts.Width, max(1, opts.Height-chromeRows))

	sched := loop.New(opts.Session, controls.Next, func(w *world.World) {
		f.world = w
	}, opts.TickRate)

	return GameModel{
		opts:          opts,
		session:       opts.Session,
		sched:         sched,
		controls:      controls,
		keys:          keys,
		help:          help.New(),
		screen:        screen,
		frame:         f,
		logger:        opts.Logger,
		seedWaitTicks: int(opts.SeedWait * time.Duration(opts.TickRate) / time.Second),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-chromeRows))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m = m.leave(m.endReason())
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m = m.leave(m.endReason())
		m.backToMenu = true
		if !m.opts.Embedded {
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	m.controls.HandleKey(msg)
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu || m.finished {
		return m, nil
	}

	if m.awaitingSeed() {
		m.session.Drain()
		m.waited++
		m.controls.Release()
		m.frame.world = m.session.Snapshot()
		return m, tickCmd(m.opts.TickRate)
	}

	if !m.sched.Step() {
		m.finished = true
		m = m.record(storage.EndDefeated)
		return m, nil
	}
	return m, tickCmd(m.opts.TickRate)
}

// awaitingSeed reports whether a peer is still holding its first tick for
// the host's seed.
func (m GameModel) awaitingSeed() bool {
	return m.session.Role() == netsync.RolePeer &&
		!m.session.Started() &&
		!m.session.SeedReceived() &&
		m.waited < m.seedWaitTicks
}

func (m GameModel) endReason() string {
	if m.session.Status() == netsync.StatusLost {
		return storage.EndLost
	}
	return storage.EndQuit
}

// leave records the result and closes the link.
func (m GameModel) leave(reason string) GameModel {
	m = m.record(reason)
	if m.opts.Link != nil {
		if err := m.opts.Link.Close(); err != nil {
			m.logger.Debug("closing link", "err", err)
		}
	}
	return m
}

// record saves the session result once. Sessions that never ticked are
// not recorded.
func (m GameModel) record(reason string) GameModel {
	if m.saved || !m.session.Started() {
		return m
	}
	m.saved = true
	if m.opts.Store == nil {
		return m
	}

	w := m.session.World()
	_, err := m.opts.Store.SaveSession(storage.SessionResult{
		PlayerID:  m.opts.PlayerID,
		Role:      m.session.Role().String(),
		Seed:      int64(w.Seed),
		Score:     w.Score,
		Level:     w.Player.Level(),
		Ticks:     w.Tick,
		EndReason: reason,
	})
	if err != nil {
		m.logger.Warn("could not save session", "err", err)
	}
	return m
}

// View renders the map, the HUD and the help line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	w := m.frame.world
	DrawWorld(m.screen, w)
	if m.awaitingSeed() {
		m.screen.DrawTextCentered(m.screen.Height()/2-1, " waiting for host... ", core.ColorYellow)
	}

	peer := ""
	if m.session.Role() != netsync.RoleSolo {
		peer = m.session.Status().String()
	}
	hud := HUD(w, peer)
	if m.opts.Note != "" {
		hud += hudLabel.Render("  |  " + m.opts.Note)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		hud,
		hudLabel.Render(m.help.View(m.keys)),
	)
}

// Finished reports whether the local player died.
func (m GameModel) Finished() bool {
	return m.finished
}

// Saved reports whether the result has been recorded.
func (m GameModel) Saved() bool {
	return m.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// World returns the latest rendered world.
func (m GameModel) World() *world.World {
	return m.frame.world
}

// Run starts a Bubble Tea program for one session.
func Run(opts GameOptions) error {
	p := tea.NewProgram(NewGameModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
