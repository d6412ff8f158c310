// Package color provides hex color parsing and linear channel interpolation
// for graph node coloring.
package color

import (
	"fmt"
	"math"
	"strings"
)

// RGB is a 24-bit color with one byte per channel.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// MustParseHex is like ParseHex but panics on invalid input.
// Intended for package-level default palettes.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Gradient interpolates linearly between from and to with the given weight.
// Each channel is mixed independently as from + (to-from)*weight, rounded to
// the nearest integer and clamped to [0, 255]. A weight of 0 yields from
// exactly; 1 yields to exactly.
func Gradient(from, to RGB, weight float64) RGB {
	return RGB{
		R: mix(from.R, to.R, weight),
		G: mix(from.G, to.G, weight),
		B: mix(from.B, to.B, weight),
	}
}

func mix(from, to uint8, weight float64) uint8 {
	v := math.Round(float64(from) + (float64(to)-float64(from))*weight)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
