// Package rasterize converts ASCII art documents into raster images.
//
// fonts.go owns font resolution. Faces are served by a FontSource so the
// renderer never touches the filesystem; the default source resolves names
// against the Go fonts compiled into the binary and guarantees a usable
// monospace fallback for any name it does not recognize.
package rasterize

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackFontName is the built-in monospace face used whenever the
// requested font cannot be resolved. Falling back is a signal, not an error;
// rendering always proceeds.
const FallbackFontName = "gomono"

// FontSource resolves a font name and pixel size to a sized face.
// Implementations must be safe for concurrent use.
type FontSource interface {
	// Face returns a face for the named font at the given pixel size.
	// An error means the source cannot serve the name; the renderer then
	// falls back to the built-in monospace face.
	Face(name string, sizePx int) (font.Face, error)
}

// builtinFonts maps normalized font names to embedded TTF data. Aliases
// cover the names the original tool's users pass on the command line.
var builtinFonts = map[string][]byte{
	"gomono":     gomono.TTF,
	"mono":       gomono.TTF,
	"monospace":  gomono.TTF,
	"courier":    gomono.TTF,
	"gomonobold": gomonobold.TTF,
	"goregular":  goregular.TTF,
	"regular":    goregular.TTF,
	"gobold":     gobold.TTF,
	"bold":       gobold.TTF,
	"goitalic":   goitalic.TTF,
	"italic":     goitalic.TTF,
}

// EmbeddedFonts serves the Go font family compiled into the binary.
// The zero value is ready to use.
type EmbeddedFonts struct{}

// Face resolves a name against the embedded font set.
func (EmbeddedFonts) Face(name string, sizePx int) (font.Face, error) {
	ttf, ok := builtinFonts[normalizeFontName(name)]
	if !ok {
		return nil, fmt.Errorf("rasterize: unknown font %q", name)
	}
	return newFace(ttf, sizePx)
}

// fallbackFace builds the guaranteed fallback face. The fallback font is
// embedded, so a failure here indicates a corrupted binary and is returned
// as a hard error rather than papered over.
func fallbackFace(sizePx int) (font.Face, error) {
	return newFace(gomono.TTF, sizePx)
}

// newFace parses TTF data and sizes it. At 72 DPI one point equals one
// pixel, which keeps fontSizePx meaning what it says.
func newFace(ttf []byte, sizePx int) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("rasterize: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterize: size font: %w", err)
	}
	return face, nil
}

func normalizeFontName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ".ttf")
	return strings.ReplaceAll(name, " ", "")
}
