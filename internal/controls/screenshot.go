package controls

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/adjust"
	homedir "github.com/mitchellh/go-homedir"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// screenshotGamma matches the contract that accumulation textures
// already hold linear-saturated radiance (spec.md section 4.5); bild's
// Gamma adjustment converts to the display-referred 8-bit image a PNG
// expects.
const screenshotGamma float64 = 1.0 / 2.2

// now is a seam so tests can pin the generated filename.
var now = time.Now

// SaveScreenshot tonemaps a linear RGB pixel buffer (row-major, origin
// top-left, one float32 per channel) and writes it as a PNG into the
// per-user cache directory. It takes the already-read-back pixel buffer
// rather than touching the GPU itself, so it is exercised by tests
// without a GL context; internal/gpu owns the glGetTexImage call that
// produces pixels. hud, if non-empty, is stamped in the bottom-left
// corner — the samples-per-pixel setting and frame index at the time
// the shot was taken, since that information isn't otherwise preserved
// in the saved image.
func SaveScreenshot(pixels []float32, width, height int, hud string) (string, error) {
	if len(pixels) != width*height*3 {
		return "", fmt.Errorf("pixel buffer has %d floats, want %d for %dx%d RGB", len(pixels), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.Set(x, y, color.RGBA{
				R: toByte(pixels[i+0]),
				G: toByte(pixels[i+1]),
				B: toByte(pixels[i+2]),
				A: 255,
			})
		}
	}

	tonemapped := adjust.Gamma(img, screenshotGamma)

	if hud != "" {
		stampHUD(tonemapped, hud, height)
	}

	dir, err := homedir.Expand("~/.cache/pathtracer/screenshots")
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	name := fmt.Sprintf("pathtracer-%s.png", now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, tonemapped); err != nil {
		return "", fmt.Errorf("encode screenshot: %w", err)
	}
	return path, nil
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

const hudMargin = 6

// stampHUD draws text in img's bottom-left corner using the stdlib
// 7x13 face from golang.org/x/image/font/basicfont, the same bitmap-font
// approach the corpus uses for no-asset-file text rendering. img must be
// a draw.Image; bild's adjust functions always return one.
func stampHUD(img image.Image, text string, height int) {
	dst, ok := img.(draw.Image)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(hudMargin, height-hudMargin),
	}
	d.DrawString(text)
}
