// Package codec handles the image encode/decode boundary for AsciiVision.
//
// The conversion engine itself operates on in-memory image.Image values and
// never touches bytes on disk; this package is the injected collaborator that
// turns caller-supplied bytes into images and images back into bytes.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
)

// Codec boundary errors
var (
	ErrEmptyData         = errors.New("codec: empty image data")
	ErrDecode            = errors.New("codec: unable to decode image data")
	ErrEncode            = errors.New("codec: unable to encode image")
	ErrUnsupportedFormat = errors.New("codec: unsupported output format")
)

// DefaultJPEGQuality is used when encoding JPEG output.
const DefaultJPEGQuality = 90

// Decode decodes image data in any registered format (PNG, JPEG, GIF).
// This is a pure function with no side effects.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Encode writes an image to w in the named format ("png", "jpeg" or "gif").
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "png":
		err = png.Encode(w, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// EncodeBytes encodes an image into a byte slice in the named format.
func EncodeBytes(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes an image as PNG bytes. The describe provider uses this
// form when building data URLs.
func EncodePNG(img image.Image) ([]byte, error) {
	return EncodeBytes(img, "png")
}

// FormatForPath maps an output file path to an encoding format using its
// extension. Unknown extensions fall back to PNG, matching the behavior a
// caller expects from a default output target.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	default:
		return "png"
	}
}
