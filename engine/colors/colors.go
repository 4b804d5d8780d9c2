package colors

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is linear RGBA in [0..1].
type Color [4]float32

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}

	// Fallback gradient palette.
	Midnight = Color{0.043, 0.047, 0.114, 1}
	Indigo   = Color{0.192, 0.129, 0.455, 1}
	Violet   = Color{0.443, 0.184, 0.576, 1}
	Teal     = Color{0.090, 0.384, 0.447, 1}
)

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Parse reads "#RRGGBB" or "#RRGGBBAA".
func Parse(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// UnmarshalText lets config files spell colors as hex strings.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
