package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wildgrove/internal/lobby"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/transport"
)

// LobbyKeyMap defines the key bindings for the lobby menu.
type LobbyKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LobbyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LobbyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultLobbyKeyMap returns default key bindings.
func DefaultLobbyKeyMap() LobbyKeyMap {
	return LobbyKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type lobbyState int

const (
	lobbyChoose lobbyState = iota
	lobbyHosting
	lobbyEnterCode
)

// codeLength is the length of a join code.
const codeLength = 6

var lobbyItems = []struct {
	title string
	role  netsync.Role
}{
	{"Explore alone", netsync.RoleSolo},
	{"Host a co-op grove", netsync.RoleHost},
	{"Join a friend", netsync.RolePeer},
}

// LobbyChoice is what the player picked.
type LobbyChoice struct {
	Role netsync.Role
	Link *transport.MemoryChannel // nil for solo
	Code string
}

// pairedMsg carries the host's end of the pipe once a friend joins.
type pairedMsg struct {
	code string
	link *transport.MemoryChannel
}

// lobbyClosedMsg reports that a hosted lobby was closed.
type lobbyClosedMsg struct{ code string }

// LobbyModel lets an SSH player pick solo, host or join.
type LobbyModel struct {
	pairing *Pairing
	keys    LobbyKeyMap
	help    help.Model
	state   lobbyState
	cursor  int
	width   int
	height  int

	hosted    *lobby.Lobby[hostLink]
	codeInput string
	err       string

	choice   *LobbyChoice
	quitting bool
}

// NewLobbyModel creates a lobby menu.
func NewLobbyModel(pairing *Pairing, width, height int) LobbyModel {
	return LobbyModel{
		pairing: pairing,
		keys:    DefaultLobbyKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
}

// Init initializes the lobby model.
func (m LobbyModel) Init() tea.Cmd {
	return nil
}

// waitForPeer blocks until the hosted lobby is joined or closed.
func waitForPeer(l *lobby.Lobby[hostLink]) tea.Cmd {
	return func() tea.Msg {
		select {
		case ch := <-l.Host:
			return pairedMsg{code: l.Code, link: ch}
		case <-l.Closed():
			return lobbyClosedMsg{code: l.Code}
		}
	}
}

// Update handles messages.
func (m LobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case pairedMsg:
		if m.state != lobbyHosting || m.hosted == nil || m.hosted.Code != msg.code {
			msg.link.Close()
			return m, nil
		}
		m.pairing.Cancel(m.hosted.Code)
		m.choice = &LobbyChoice{Role: netsync.RoleHost, Link: msg.link, Code: m.hosted.Code}
		m.hosted = nil
		return m, nil
	case lobbyClosedMsg:
		if m.state == lobbyHosting && m.hosted != nil && m.hosted.Code == msg.code {
			m.state = lobbyChoose
			m.hosted = nil
			m.err = "lobby expired"
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.cancelHosting()
			m.quitting = true
			return m, tea.Quit
		}
		switch m.state {
		case lobbyChoose:
			return m.handleChooseKey(msg)
		case lobbyHosting:
			if key.Matches(msg, m.keys.Back) {
				m.cancelHosting()
				m.state = lobbyChoose
			}
			return m, nil
		case lobbyEnterCode:
			return m.handleCodeKey(msg)
		}
	}
	return m, nil
}

func (m LobbyModel) handleChooseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(lobbyItems)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.err = ""
		switch lobbyItems[m.cursor].role {
		case netsync.RoleSolo:
			m.choice = &LobbyChoice{Role: netsync.RoleSolo}
		case netsync.RoleHost:
			m.hosted = m.pairing.Host()
			m.state = lobbyHosting
			return m, waitForPeer(m.hosted)
		case netsync.RolePeer:
			m.codeInput = ""
			m.state = lobbyEnterCode
		}
	}
	return m, nil
}

func (m LobbyModel) handleCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = lobbyChoose
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(m.codeInput) != codeLength {
			m.err = fmt.Sprintf("codes have %d characters", codeLength)
			return m, nil
		}
		link, err := m.pairing.Join(m.codeInput)
		switch {
		case errors.Is(err, lobby.ErrLobbyNotFound):
			m.err = "no grove with that code"
		case errors.Is(err, lobby.ErrLobbyFull):
			m.err = "that grove already has two explorers"
		case err != nil:
			m.err = err.Error()
		default:
			m.choice = &LobbyChoice{Role: netsync.RolePeer, Link: link, Code: m.codeInput}
		}
		return m, nil
	}

	switch k := msg.String(); k {
	case "backspace":
		if m.codeInput != "" {
			m.codeInput = m.codeInput[:len(m.codeInput)-1]
		}
	default:
		if len(k) == 1 && len(m.codeInput) < codeLength {
			c := strings.ToUpper(k)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.codeInput += c
			}
		}
	}
	return m, nil
}

func (m *LobbyModel) cancelHosting() {
	if m.hosted != nil {
		m.pairing.Cancel(m.hosted.Code)
		m.hosted = nil
	}
}

var (
	lobbyTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lobbyActive = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	lobbyCode   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Bold(true)
	lobbyErr = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the menu.
func (m LobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(lobbyTitle.Render("W I L D G R O V E"), m.width))
	b.WriteString("\n\n")

	switch m.state {
	case lobbyChoose:
		for i, item := range lobbyItems {
			line := "  " + item.title
			if i == m.cursor {
				line = lobbyActive.Render("> " + item.title)
			}
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	case lobbyHosting:
		b.WriteString(centerText("Share this code with your friend:", m.width))
		b.WriteString("\n\n")
		if m.hosted != nil {
			for _, line := range strings.Split(lobbyCode.Render(m.hosted.Code), "\n") {
				b.WriteString(centerText(line, m.width))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(centerText("Waiting for a friend to join...", m.width))
		b.WriteString("\n")
	case lobbyEnterCode:
		b.WriteString(centerText("Enter the grove code:", m.width))
		b.WriteString("\n\n")
		code := m.codeInput + strings.Repeat("_", codeLength-len(m.codeInput))
		b.WriteString(centerText(lobbyActive.Render(code), m.width))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(centerText(lobbyErr.Render(m.err), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(hudLabel.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// Choice returns the player's pick, or nil while still choosing.
func (m LobbyModel) Choice() *LobbyChoice {
	return m.choice
}

// IsQuitting returns true if user requested to quit.
func (m LobbyModel) IsQuitting() bool {
	return m.quitting
}
