package core

// Color is a presentation hint attached to entities and screen cells.
// The simulation never reads it; renderers map it to terminal colors.
type Color uint8

// Palette used by entities and the HUD.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorDarkGreen
	ColorGray
	ColorBlue
	ColorCyan
	ColorRed
	ColorYellow
	ColorOrange
	ColorMagenta
	ColorWhite
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorGreen:
		return "green"
	case ColorDarkGreen:
		return "dark-green"
	case ColorGray:
		return "gray"
	case ColorBlue:
		return "blue"
	case ColorCyan:
		return "cyan"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorOrange:
		return "orange"
	case ColorMagenta:
		return "magenta"
	case ColorWhite:
		return "white"
	default:
		return "unknown"
	}
}
