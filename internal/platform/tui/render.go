package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorDarkGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	core.ColorGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBlue:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	core.ColorCyan:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorOrange:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorMagenta:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorWhite:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs used on the map.
const (
	GlyphStream    = '~'
	GlyphTree      = '♣'
	GlyphRock      = '●'
	GlyphHostile   = 'w'
	GlyphBiting    = 'W'
	GlyphPlayer    = '@'
	GlyphRemote    = '&'
	GlyphSwing     = '*'
	GlyphSanctuary = '·'
	GlyphOutside   = ':'
)

// Viewport maps world units to screen cells around a center point.
// Terminal cells are about twice as tall as wide, so a row covers twice
// the units of a column.
type Viewport struct {
	Center      core.Vec2
	Cols, Rows  int
	UnitsPerCol float64
	UnitsPerRow float64
}

// NewViewport creates a viewport of cols x rows centered on center.
func NewViewport(center core.Vec2, cols, rows int) Viewport {
	return Viewport{Center: center, Cols: cols, Rows: rows, UnitsPerCol: 25, UnitsPerRow: 50}
}

// Cell returns the screen cell containing world point p.
func (v Viewport) Cell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X-v.Center.X)/v.UnitsPerCol)) + v.Cols/2
	y := int(math.Floor((p.Y-v.Center.Y)/v.UnitsPerRow)) + v.Rows/2
	return x, y
}

// Point returns the world point at the center of screen cell (x, y).
func (v Viewport) Point(x, y int) core.Vec2 {
	return core.V(
		v.Center.X+(float64(x-v.Cols/2)+0.5)*v.UnitsPerCol,
		v.Center.Y+(float64(y-v.Rows/2)+0.5)*v.UnitsPerRow,
	)
}

// stamp fills every cell whose center lies within r of p. The cell holding
// p is always filled so small entities never vanish.
func (v Viewport) stamp(s *core.Screen, p core.Vec2, r float64, glyph rune, c core.Color) {
	x0, y0 := v.Cell(p.Sub(core.V(r, r)))
	x1, y1 := v.Cell(p.Add(core.V(r, r)))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, v.Cols-1), min(y1, v.Rows-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if v.Point(x, y).Dist(p) < r {
				s.Set(x, y, glyph, c)
			}
		}
	}
	cx, cy := v.Cell(p)
	s.Set(cx, cy, glyph, c)
}

// DrawWorld renders the world around the camera into s. Later layers
// overwrite earlier ones: ground, stream, obstacles, hostiles, avatars.
func DrawWorld(s *core.Screen, w *world.World) {
	s.Clear()
	v := NewViewport(w.Camera, s.Width(), s.Height())

	for y := range s.Height() {
		for x := range s.Width() {
			p := v.Point(x, y)
			switch {
			case !w.Bounds.Contains(p):
				s.Set(x, y, GlyphOutside, core.ColorGray)
			case w.InSanctuary(p):
				s.Set(x, y, GlyphSanctuary, core.ColorDarkGreen)
			}
		}
	}

	for i := range w.Env {
		e := &w.Env[i]
		if e.Kind == world.KindStream {
			v.stamp(s, e.Pos, e.Radius, GlyphStream, core.ColorBlue)
		}
	}
	for i := range w.Env {
		e := &w.Env[i]
		switch e.Kind {
		case world.KindTree:
			v.stamp(s, e.Pos, e.Radius, GlyphTree, core.ColorGreen)
		case world.KindRock:
			v.stamp(s, e.Pos, e.Radius, GlyphRock, core.ColorGray)
		}
	}

	for i := range w.Hostiles {
		h := &w.Hostiles[i]
		if !h.Alive() {
			continue
		}
		glyph := GlyphHostile
		if h.Attacking {
			glyph = GlyphBiting
		}
		x, y := v.Cell(h.Pos)
		s.Set(x, y, glyph, h.Color)
	}

	for _, a := range w.Avatars() {
		glyph := GlyphPlayer
		if a.Kind == world.KindRemoteAvatar {
			glyph = GlyphRemote
		}
		if a.Attacking {
			x, y := v.Cell(a.Pos.Add(core.FromAngle(a.Facing).Scale(2 * v.UnitsPerCol)))
			s.Set(x, y, GlyphSwing, core.ColorWhite)
		}
		color := a.Color
		if !a.Alive() {
			color = core.ColorGray
		}
		x, y := v.Cell(a.Pos)
		s.Set(x, y, glyph, color)
	}

	if w.GameOver {
		msg := fmt.Sprintf(" You fell. Score %d ", w.Score)
		s.DrawTextCentered(s.Height()/2, msg, core.ColorRed)
	}
}

var (
	hudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	hudLow   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	hudPeer  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	hudWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// HUD renders the status line for the local player.
func HUD(w *world.World, peer string) string {
	p := &w.Player
	hp := hudValue
	if p.HP*4 <= p.MaxHP {
		hp = hudLow
	}

	parts := []string{
		hudLabel.Render("HP ") + hp.Render(fmt.Sprintf("%d/%d", p.HP, p.MaxHP)),
		hudLabel.Render("Lv ") + hudValue.Render(fmt.Sprintf("%d", p.Level())),
	}
	if p.Progress != nil {
		parts = append(parts, hudLabel.Render("XP ")+hudValue.Render(fmt.Sprintf("%d/%d", p.Progress.XP, p.Progress.XPToNext)))
	}
	parts = append(parts,
		hudLabel.Render("Score ")+hudValue.Render(fmt.Sprintf("%d", w.Score)),
		hudLabel.Render("Hostiles ")+hudValue.Render(fmt.Sprintf("%d", aliveHostiles(w))),
	)
	if peer != "" {
		style := hudPeer
		if peer != "friend connected" && peer != "solo" {
			style = hudWarn
		}
		parts = append(parts, style.Render(peer))
	}
	return strings.Join(parts, hudLabel.Render("  |  "))
}

func aliveHostiles(w *world.World) int {
	n := 0
	for i := range w.Hostiles {
		if w.Hostiles[i].Alive() {
			n++
		}
	}
	return n
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
