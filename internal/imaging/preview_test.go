package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestGenerateScalesDownLargeImages(t *testing.T) {
	p, err := NewPreviewer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	res, err := p.Generate(bytes.NewReader(pngBytes(t, 1000, 500)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Width != PreviewWidth {
		t.Errorf("preview width = %d, want %d", res.Width, PreviewWidth)
	}
	if res.Height != 160 {
		t.Errorf("preview height = %d, want 160 (aspect preserved)", res.Height)
	}
	if !strings.HasSuffix(res.Filename, ".jpg") {
		t.Errorf("preview should be jpeg, got %q", res.Filename)
	}

	if _, err := os.Stat(filepath.Join(p.Dir(), res.Filename)); err != nil {
		t.Errorf("preview file not written: %v", err)
	}
}

func TestGenerateKeepsSmallImages(t *testing.T) {
	p, err := NewPreviewer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	res, err := p.Generate(bytes.NewReader(pngBytes(t, 100, 80)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Width != 100 || res.Height != 80 {
		t.Errorf("small image should not be upscaled, got %dx%d", res.Width, res.Height)
	}
}

func TestGenerateRejectsNonImages(t *testing.T) {
	p, err := NewPreviewer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Generate(strings.NewReader("definitely not an image")); err == nil {
		t.Error("expected error for non-image input")
	}
}
