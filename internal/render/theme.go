package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Theme selects the background and the matching line color.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ParseTheme accepts exactly "light" or "dark" (case-insensitive).
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return 0, fmt.Errorf("render: unknown theme %q (want light or dark)", s)
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Background is white for Light and black for Dark.
func (t Theme) Background() color.NRGBA {
	if t == Dark {
		return color.NRGBA{0, 0, 0, 255}
	}
	return color.NRGBA{255, 255, 255, 255}
}

// LineColor contrasts with the background: black on Light, white on Dark.
func (t Theme) LineColor() color.NRGBA {
	if t == Dark {
		return color.NRGBA{255, 255, 255, 255}
	}
	return color.NRGBA{0, 0, 0, 255}
}

// Mode selects filled or edge-only drawing.
type Mode int

const (
	Color Mode = iota
	Wireframe
)

// ParseMode accepts exactly "color" or "wireframe" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color":
		return Color, nil
	case "wireframe":
		return Wireframe, nil
	}
	return 0, fmt.Errorf("render: unknown mode %q (want color or wireframe)", s)
}

func (m Mode) String() string {
	if m == Wireframe {
		return "wireframe"
	}
	return "color"
}

// SurfaceGray is the fill color used in Color mode.
var SurfaceGray = color.NRGBA{128, 128, 128, 255}
