package rasterize

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"
)

func TestRenderHelloDimensions(t *testing.T) {
	cfg := DefaultConfig()

	r, err := Render([]string{"HELLO"}, cfg)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	wantW := 5*r.CellWidth + 2*cfg.PaddingPx
	wantH := 1*r.LineHeight + 2*cfg.PaddingPx
	bounds := r.Image.Bounds()
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		t.Errorf("Render() canvas = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}
	if r.FontFallback {
		t.Errorf("Render() reported font fallback for the default font")
	}
}

func TestRenderEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "no lines", lines: nil},
		{name: "single empty line", lines: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			r, err := Render(tt.lines, cfg)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}

			bounds := r.Image.Bounds()
			want := 2 * cfg.PaddingPx
			if bounds.Dx() != want || bounds.Dy() != want {
				t.Errorf("Render() canvas = %dx%d, want padding-only %dx%d",
					bounds.Dx(), bounds.Dy(), want, want)
			}
			if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
				t.Errorf("Render() canvas has non-positive dimensions with padding > 0")
			}
		})
	}
}

func TestRenderUnknownFontFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontName = "definitely-not-installed"

	r, err := Render([]string{"HI"}, cfg)
	if err != nil {
		t.Fatalf("Render() with unknown font returned error: %v", err)
	}
	if !r.FontFallback {
		t.Errorf("Render() FontFallback = false, want true for unknown font")
	}
	if r.Image == nil {
		t.Fatalf("Render() returned nil image despite fallback")
	}
}

func TestRenderBackgroundFill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = "black"
	cfg.Foreground = "white"

	r, err := Render(nil, cfg)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	// Padding-only canvas: every pixel is background.
	bounds := r.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if got := r.Image.RGBAAt(x, y); got != (color.RGBA{0, 0, 0, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want black background", x, y, got)
			}
		}
	}
}

func TestRenderDrawsForeground(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaddingPx = 2

	r, err := Render([]string{"@@@@@"}, cfg)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	// At least some pixels must differ from the white background.
	bounds := r.Image.Bounds()
	inked := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r.Image.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Errorf("Render() produced a blank canvas for non-empty text")
	}
}

func TestRenderWrapAddsLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WrapWidth = 5

	r, err := Render([]string{"aa bb cc dd ee"}, cfg)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	// "aa bb cc dd ee" wraps to 3 lines of at most 5 chars.
	wantH := 3*r.LineHeight + 2*cfg.PaddingPx
	wantW := 5*r.CellWidth + 2*cfg.PaddingPx
	bounds := r.Image.Bounds()
	if bounds.Dy() != wantH {
		t.Errorf("Render() height = %d, want %d (3 wrapped lines)", bounds.Dy(), wantH)
	}
	if bounds.Dx() != wantW {
		t.Errorf("Render() width = %d, want %d", bounds.Dx(), wantW)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero font size",
			mutate:  func(c *Config) { c.FontSizePx = 0 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "negative font size",
			mutate:  func(c *Config) { c.FontSizePx = -3 },
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "negative padding",
			mutate:  func(c *Config) { c.PaddingPx = -1 },
			wantErr: ErrInvalidPadding,
		},
		{
			name:    "bad background color",
			mutate:  func(c *Config) { c.Background = "not-a-color" },
			wantErr: ErrUnknownColor,
		},
		{
			name:    "bad foreground color",
			mutate:  func(c *Config) { c.Foreground = "#12" },
			wantErr: ErrUnknownColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Render([]string{"x"}, cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	lines := []string{" /\\_/\\", "( o.o )", " > ^ <"}

	encode := func() []byte {
		r, err := Render(lines, cfg)
		if err != nil {
			t.Fatalf("Render() unexpected error: %v", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, r.Image); err != nil {
			t.Fatalf("png.Encode: %v", err)
		}
		return buf.Bytes()
	}

	first := encode()
	for i := 0; i < 3; i++ {
		if !bytes.Equal(encode(), first) {
			t.Fatalf("Render() run %d produced different bytes", i+2)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "white", want: color.RGBA{255, 255, 255, 255}},
		{in: "Black", want: color.RGBA{0, 0, 0, 255}},
		{in: "steelblue", want: color.RGBA{70, 130, 180, 255}},
		{in: "#fff", want: color.RGBA{255, 255, 255, 255}},
		{in: "#1e90ff", want: color.RGBA{30, 144, 255, 255}},
		{in: "  red  ", want: color.RGBA{255, 0, 0, 255}},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "blurple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrUnknownColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEmbeddedFontsAliases(t *testing.T) {
	src := EmbeddedFonts{}

	for _, name := range []string{"courier", "Courier", "gomono", "GoMono", "bold", "regular"} {
		face, err := src.Face(name, 12)
		if err != nil {
			t.Errorf("Face(%q) unexpected error: %v", name, err)
			continue
		}
		face.Close()
	}

	if _, err := src.Face("comic sans ms", 12); err == nil {
		t.Errorf("Face() for unknown font succeeded, want error")
	}
}

func BenchmarkRender(b *testing.B) {
	cfg := DefaultConfig()
	lines := []string{
		"the quick brown fox jumps over the lazy dog",
		"0123456789 !@#$%^&*()",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Render(lines, cfg); err != nil {
			b.Fatalf("Render() error: %v", err)
		}
	}
}
