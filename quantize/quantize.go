// Package quantize converts raster images into ASCII art documents.
//
// The pipeline is: perceptual grayscale conversion, aspect-corrected
// downscale to the target character grid, then luminance-to-glyph mapping
// over a fixed brightness ramp. Every step is deterministic, so repeated
// calls on the same input produce byte-identical output.
package quantize

import (
	"errors"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Quantization errors
var (
	ErrInvalidWidth = errors.New("quantize: output width must be positive")
	ErrNilImage     = errors.New("quantize: source image is nil")
)

// DefaultRamp is the brightness ramp used for luminance-to-glyph mapping,
// ordered darkest to lightest. Index 0 renders full black, the final index
// (a space) renders the background.
const DefaultRamp = "@%#*+=-:. "

// DefaultAspectFactor compensates for monospaced glyph cells being taller
// than they are wide. Without it the emitted text block appears roughly
// twice as tall as the source image.
const DefaultAspectFactor = 0.55

// Options controls a single quantization call. The zero value of Ramp and
// AspectFactor selects the package defaults; Width is required.
type Options struct {
	// Width is the output width in characters. Must be > 0.
	Width int

	// Ramp overrides DefaultRamp. Must be ordered darkest to lightest.
	Ramp string

	// AspectFactor overrides DefaultAspectFactor.
	AspectFactor float64
}

// Image converts an image to ASCII art lines using default ramp and aspect
// settings. This is the common entry point; WithOptions exists for callers
// that need to override the constants.
func Image(img image.Image, width int) ([]string, error) {
	return WithOptions(img, Options{Width: width})
}

// WithOptions converts an image to ASCII art lines.
//
// Steps:
//  1. Convert the source to single-channel luminance (ITU-R BT.601 weights,
//     the stdlib gray model).
//  2. Compute the output height as round(width * srcH/srcW * aspectFactor).
//  3. Downscale the luminance grid to width x height with a Catmull-Rom
//     filter to suppress aliasing.
//  4. Map each resampled pixel to a ramp character:
//     index = floor(luminance/255 * (len(ramp)-1)), clamped.
//
// Returns one string per output row, each exactly width characters long.
// A source so wide that the height rounds to zero yields an empty document.
func WithOptions(img image.Image, opts Options) ([]string, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if opts.Width <= 0 {
		return nil, ErrInvalidWidth
	}
	ramp := opts.Ramp
	if ramp == "" {
		ramp = DefaultRamp
	}
	aspect := opts.AspectFactor
	if aspect == 0 {
		aspect = DefaultAspectFactor
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return []string{}, nil
	}

	height := int(math.Round(float64(opts.Width) * (float64(srcH) / float64(srcW)) * aspect))
	if height <= 0 {
		return []string{}, nil
	}

	gray := toGray(img)
	resampled := resample(gray, opts.Width, height)

	lines := make([]string, 0, height)
	var b strings.Builder
	b.Grow(opts.Width)
	for y := 0; y < height; y++ {
		b.Reset()
		for x := 0; x < opts.Width; x++ {
			lum := resampled.GrayAt(x, y).Y
			b.WriteByte(ramp[rampIndex(lum, len(ramp))])
		}
		lines = append(lines, b.String())
	}
	return lines, nil
}

// Flatten joins ASCII art lines into the on-disk text form: one newline per
// row, including the final row.
func Flatten(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// rampIndex maps an 8-bit luminance value to a ramp index.
// index = floor(lum/255 * (n-1)), clamped to [0, n-1].
func rampIndex(lum uint8, n int) int {
	idx := int(float64(lum) / 255.0 * float64(n-1))
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// toGray converts any image to single-channel luminance using the stdlib
// gray model (0.299R + 0.587G + 0.114B).
func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// resample downscales a luminance grid to exactly width x height using the
// Catmull-Rom kernel, the highest quality scaler in x/image/draw.
func resample(gray *image.Gray, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return dst
}
