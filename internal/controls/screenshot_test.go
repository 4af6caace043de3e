package controls

import (
	"image/png"
	"os"
	"testing"
	"time"
)

func TestSaveScreenshotWritesDecodablePNG(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { now = time.Now }()

	const w, h = 4, 2
	pixels := make([]float32, w*h*3)
	for i := range pixels {
		pixels[i] = 0.5
	}

	path, err := SaveScreenshot(pixels, w, h, "spp=4 frame=10")
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved screenshot: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != w || bounds.Dy() != h {
		t.Fatalf("decoded size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), w, h)
	}
}

func TestSaveScreenshotRejectsWrongBufferLength(t *testing.T) {
	if _, err := SaveScreenshot(make([]float32, 3), 2, 2, ""); err == nil {
		t.Fatalf("expected an error for a mis-sized pixel buffer")
	}
}

func TestToByteClampsToDisplayRange(t *testing.T) {
	if v := toByte(-1); v != 0 {
		t.Fatalf("toByte(-1) = %d, want 0", v)
	}
	if v := toByte(2); v != 255 {
		t.Fatalf("toByte(2) = %d, want 255", v)
	}
	if v := toByte(0); v != 0 {
		t.Fatalf("toByte(0) = %d, want 0", v)
	}
	if v := toByte(1); v != 255 {
		t.Fatalf("toByte(1) = %d, want 255", v)
	}
}
