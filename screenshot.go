package scrollwork

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot asks for the next drawn frame to be saved as a PNG in
// ScreenshotDir under label. Calls in the same frame share one capture.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// saveShots writes the captured frame once per queued label. Draw calls it
// after copying the screen into lastFrame.
func (s *Scene) saveShots() {
	if len(s.screenshotQueue) == 0 || s.lastFrame == nil {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	b := s.lastFrame.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	s.lastFrame.ReadPixels(pix)
	paths, err := writeShots(s.ScreenshotDir, straightAlpha(pix, b.Dx(), b.Dy()), labels, time.Now())
	for _, p := range paths {
		debugf("screenshot written to %s", p)
	}
	if err != nil {
		warnf("screenshot: %v", err)
	}
}

// writeShots encodes img to dir once per label and returns the paths
// written. It keeps going past a failed label and reports the first error.
func writeShots(dir string, img image.Image, labels []string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := now.Format("20060102_150405")
	var paths []string
	var first error
	for _, label := range labels {
		p := filepath.Join(dir, stamp+"_"+shotName(label)+".png")
		if err := savePNG(p, img); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		paths = append(paths, p)
	}
	return paths, first
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// straightAlpha converts Ebitengine's premultiplied pixels to NRGBA.
func straightAlpha(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pix); i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{pix[i], pix[i+1], pix[i+2], pix[i+3]}).(color.NRGBA)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// shotName makes label safe as a file name: letters, digits, '-' and '.'
// pass through, anything else becomes '_'.
func shotName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
