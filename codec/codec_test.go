package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 20), uint8(y * 20), 128, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty data", data: nil, wantErr: ErrEmptyData},
		{name: "garbage bytes", data: []byte{0xde, 0xad, 0xbe, 0xef}, wantErr: ErrDecode},
		{name: "truncated png header", data: []byte("\x89PNG\r\n"), wantErr: ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("valid png", func(t *testing.T) {
		img, err := Decode(encodePNG(t, testImage(8, 6)))
		if err != nil {
			t.Fatalf("Decode() unexpected error: %v", err)
		}
		if got := img.Bounds(); got.Dx() != 8 || got.Dy() != 6 {
			t.Errorf("Decode() bounds = %v, want 8x6", got)
		}
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "gif"} {
		t.Run(format, func(t *testing.T) {
			data, err := EncodeBytes(testImage(10, 10), format)
			if err != nil {
				t.Fatalf("EncodeBytes(%q) error: %v", format, err)
			}
			if _, err := Decode(data); err != nil {
				t.Errorf("Decode() of %s output failed: %v", format, err)
			}
		})
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(2, 2), "bmp")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "out.png", want: "png"},
		{path: "out.jpg", want: "jpeg"},
		{path: "OUT.JPEG", want: "jpeg"},
		{path: "anim.gif", want: "gif"},
		{path: "noext", want: "png"},
		{path: "weird.webp", want: "png"},
	}

	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
