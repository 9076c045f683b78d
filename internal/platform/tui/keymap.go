package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wildgrove/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Attack key.Binding
	Help   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Attack, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Help, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("w/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/right", "move right"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "attack"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "leave"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HoldTicks is how long a direction stays pressed after its last key event.
// Terminals report key repeats but never key releases.
const HoldTicks = 15

const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

// Controls turns discrete key events into per-tick input frames.
type Controls struct {
	keys   GameKeyMap
	hold   [4]int
	attack bool
}

// NewControls creates controls using keys.
func NewControls(keys GameKeyMap) *Controls {
	return &Controls{keys: keys}
}

// HandleKey records a movement or attack key. It reports whether the key
// was consumed.
func (c *Controls) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, c.keys.Up):
		c.press(dirUp, dirDown)
	case key.Matches(msg, c.keys.Down):
		c.press(dirDown, dirUp)
	case key.Matches(msg, c.keys.Left):
		c.press(dirLeft, dirRight)
	case key.Matches(msg, c.keys.Right):
		c.press(dirRight, dirLeft)
	case key.Matches(msg, c.keys.Attack):
		c.attack = true
	default:
		return false
	}
	return true
}

func (c *Controls) press(dir, opposite int) {
	c.hold[dir] = HoldTicks
	c.hold[opposite] = 0
}

// Next returns the frame for the coming tick and ages held directions.
// Attack is reported on exactly one frame per press.
func (c *Controls) Next() core.InputFrame {
	var f core.InputFrame
	if c.hold[dirUp] > 0 {
		f.MoveY--
	}
	if c.hold[dirDown] > 0 {
		f.MoveY++
	}
	if c.hold[dirLeft] > 0 {
		f.MoveX--
	}
	if c.hold[dirRight] > 0 {
		f.MoveX++
	}
	f.Attack = c.attack

	c.attack = false
	for i := range c.hold {
		if c.hold[i] > 0 {
			c.hold[i]--
		}
	}
	return f
}

// Release drops every held direction.
func (c *Controls) Release() {
	c.hold = [4]int{}
	c.attack = false
}
