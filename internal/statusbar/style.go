package statusbar

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/pictor/internal/config"
)

// Theme holds the status bar colors.
type Theme struct {
	// Foreground is the default text color.
	Foreground tcell.Color

	// Background is the bar background color.
	Background tcell.Color

	// Error is the text color for error messages.
	Error tcell.Color

	// Warning is the text color for warning messages.
	Warning tcell.Color
}

// DefaultTheme returns the built-in color theme.
func DefaultTheme() Theme {
	return Theme{
		Foreground: hexColor("#d8dee9", tcell.ColorWhite),
		Background: hexColor("#2e3440", tcell.ColorBlack),
		Error:      hexColor("#bf616a", tcell.ColorRed),
		Warning:    hexColor("#ebcb8b", tcell.ColorYellow),
	}
}

// ThemeFromConfig builds a theme from the theme.* settings, falling back
// to the default theme for unparsable values.
func ThemeFromConfig(cfg *config.Settings) Theme {
	def := DefaultTheme()
	return Theme{
		Foreground: hexColor(cfg.GetString("theme.foreground"), def.Foreground),
		Background: hexColor(cfg.GetString("theme.background"), def.Background),
		Error:      hexColor(cfg.GetString("theme.error"), def.Error),
		Warning:    hexColor(cfg.GetString("theme.warning"), def.Warning),
	}
}

// hexColor parses a "#rrggbb" color, returning fallback on failure.
func hexColor(hex string, fallback tcell.Color) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// toColorful converts a tcell RGB color for blending.
func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// fromColorful converts a blended color back to tcell.
func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Dim returns the color blended halfway toward the bar background, for
// secondary text such as the mode indicator separator.
func (t Theme) Dim(c tcell.Color) tcell.Color {
	return fromColorful(toColorful(c).BlendLab(toColorful(t.Background), 0.5))
}

// barStyle is the base style for the status bar row.
func (t Theme) barStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// messageStyle selects the style for a message of the given severity.
func (t Theme) messageStyle(isError, isWarning bool) tcell.Style {
	switch {
	case isError:
		return t.barStyle().Foreground(t.Error).Bold(true)
	case isWarning:
		return t.barStyle().Foreground(t.Warning)
	default:
		return t.barStyle()
	}
}

// modeStyle is the style for the mode indicator, inverted for contrast.
func (t Theme) modeStyle() tcell.Style {
	return tcell.StyleDefault.
		Foreground(t.Background).
		Background(t.Foreground).
		Bold(true)
}
