package rasterize

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor indicates a color value that is neither a recognized SVG
// 1.1 color name nor a #rgb / #rrggbb hex triplet.
var ErrUnknownColor = errors.New("rasterize: unknown color")

// ParseColor resolves a named or hex color to an RGBA value.
//
// Accepted forms:
//   - SVG 1.1 color names, case-insensitive ("white", "Black", "steelblue")
//   - #rgb shorthand hex ("#fff")
//   - #rrggbb hex ("#1e90ff")
func ParseColor(value string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty value", ErrUnknownColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, value)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]

	switch len(hex) {
	case 3:
		// Expand #rgb to #rrggbb.
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
