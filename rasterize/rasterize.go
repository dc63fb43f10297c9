// rasterize.go implements the text-to-image pipeline:
// wrap, resolve font and colors, measure the block, compose the canvas,
// draw each line. The pipeline is deterministic and shares no state between
// calls, so independent renders may run concurrently.
package rasterize

import (
	"errors"
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/whoknowsla/AsciiVision/textwrap"
)

// Configuration errors
var (
	ErrInvalidFontSize = errors.New("rasterize: font size must be positive")
	ErrInvalidPadding  = errors.New("rasterize: padding must not be negative")
)

// Default configuration values, matching the conversion defaults the CLI
// exposes.
const (
	DefaultFontName   = "courier"
	DefaultFontSizePx = 12
	DefaultBackground = "white"
	DefaultForeground = "black"
	DefaultPaddingPx  = 20
	DefaultWrapWidth  = 80
)

// Config holds the per-call conversion settings. A Config is a plain value:
// it is never retained or mutated by the renderer, and each Render call is
// independent.
type Config struct {
	// FontName selects the face. Unknown names fall back to the built-in
	// monospace font; the fallback is reported on the Rendering, not as an
	// error.
	FontName string

	// FontSizePx is the face size in pixels. Must be > 0.
	FontSizePx int

	// Background and Foreground are named or hex colors.
	Background string
	Foreground string

	// PaddingPx is the border around the text block. Must be >= 0.
	PaddingPx int

	// WrapWidth is the wrap width in characters; <= 0 disables wrapping.
	WrapWidth int

	// LineSpacing and Antialias are accepted for CLI compatibility but do
	// not currently alter the rendering path.
	LineSpacing float64
	Antialias   bool

	// Fonts overrides the font source. Nil selects the embedded fonts.
	Fonts FontSource
}

// DefaultConfig returns the conversion defaults.
func DefaultConfig() Config {
	return Config{
		FontName:    DefaultFontName,
		FontSizePx:  DefaultFontSizePx,
		Background:  DefaultBackground,
		Foreground:  DefaultForeground,
		PaddingPx:   DefaultPaddingPx,
		WrapWidth:   DefaultWrapWidth,
		LineSpacing: 1,
		Antialias:   true,
	}
}

// Rendering is the result of a Render call.
type Rendering struct {
	// Image is the composed canvas.
	Image *image.RGBA

	// FontFallback reports that the requested font could not be resolved
	// and the built-in monospace face was used instead. Informational only.
	FontFallback bool

	// CellWidth and LineHeight are the monospaced cell dimensions in pixels
	// used for layout.
	CellWidth  int
	LineHeight int
}

// Render converts ASCII art lines into an image.
//
// Pipeline:
//  1. Wrap every line at cfg.WrapWidth (identity when <= 0).
//  2. Resolve the font; unknown fonts fall back to the built-in monospace
//     face and set Rendering.FontFallback.
//  3. Measure the block under a monospaced-cell assumption: fixed advance
//     width times fixed line height.
//  4. Allocate a canvas of (blockW + 2*padding, blockH + 2*padding) filled
//     with the background color.
//  5. Draw each line in the foreground color, starting at (padding, padding).
//
// Empty input yields a padding-only canvas, not an error.
func Render(lines []string, cfg Config) (*Rendering, error) {
	if cfg.FontSizePx <= 0 {
		return nil, ErrInvalidFontSize
	}
	if cfg.PaddingPx < 0 {
		return nil, ErrInvalidPadding
	}

	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}
	fg, err := ParseColor(cfg.Foreground)
	if err != nil {
		return nil, err
	}

	face, fellBack, err := resolveFace(cfg)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	wrapped := textwrap.Wrap(lines, cfg.WrapWidth)

	cellW, lineH, ascent := cellMetrics(face)
	blockW, blockH := measureBlock(wrapped, cellW, lineH)

	canvas := image.NewRGBA(image.Rect(0, 0, blockW+2*cfg.PaddingPx, blockH+2*cfg.PaddingPx))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	for i, line := range wrapped {
		if line == "" {
			continue
		}
		drawer.Dot = fixed.P(cfg.PaddingPx, cfg.PaddingPx+i*lineH+ascent)
		drawer.DrawString(line)
	}

	return &Rendering{
		Image:        canvas,
		FontFallback: fellBack,
		CellWidth:    cellW,
		LineHeight:   lineH,
	}, nil
}

// RenderText is a convenience wrapper over Render for newline-joined text,
// as read from a file.
func RenderText(text string, cfg Config) (*Rendering, error) {
	return Render(strings.Split(text, "\n"), cfg)
}

// resolveFace loads the configured font, falling back to the built-in
// monospace face when the source cannot serve the name.
func resolveFace(cfg Config) (face font.Face, fellBack bool, err error) {
	source := cfg.Fonts
	if source == nil {
		source = EmbeddedFonts{}
	}

	face, err = source.Face(cfg.FontName, cfg.FontSizePx)
	if err == nil {
		return face, false, nil
	}

	face, err = fallbackFace(cfg.FontSizePx)
	if err != nil {
		return nil, false, err
	}
	return face, true, nil
}

// cellMetrics derives the monospaced cell from the face: advance width of a
// reference glyph, full line height, and ascent for baseline placement.
func cellMetrics(face font.Face) (cellW, lineH, ascent int) {
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance, _ = face.GlyphAdvance('?')
	}
	metrics := face.Metrics()
	return advance.Ceil(), metrics.Height.Ceil(), metrics.Ascent.Ceil()
}

// measureBlock computes the pixel footprint of the wrapped block. A block
// with no visible characters measures zero in both dimensions so that empty
// input produces a padding-only canvas.
func measureBlock(lines []string, cellW, lineH int) (blockW, blockH int) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	if maxLen == 0 {
		return 0, 0
	}
	return maxLen * cellW, len(lines) * lineH
}
