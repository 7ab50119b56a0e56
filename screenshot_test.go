package scrollwork

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestShotName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-scroll", "after-scroll"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := shotName(tt.in)
		if got != tt.want {
			t.Errorf("shotName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStraightAlpha(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half alpha
		255, 255, 255, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := straightAlpha(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 255, 255, 255, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := newTestScene(t)
	s.Screenshot("a")
	s.Screenshot("b")
	s.Screenshot("c")
	if len(s.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(s.screenshotQueue))
	}
	if s.screenshotQueue[0] != "a" || s.screenshotQueue[1] != "b" || s.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", s.screenshotQueue)
	}
}

func TestScreenshotDir(t *testing.T) {
	s := newTestScene(t)
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
	cfg := DefaultConfig()
	cfg.ScreenshotDir = "out/shots"
	if got := NewScene(cfg).ScreenshotDir; got != "out/shots" {
		t.Errorf("ScreenshotDir = %q, want %q", got, "out/shots")
	}
	cfg.ScreenshotDir = ""
	if got := NewScene(cfg).ScreenshotDir; got != "screenshots" {
		t.Errorf("empty ScreenshotDir = %q, want default", got)
	}
}

func TestWriteShots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	at := time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC)

	paths, err := writeShots(dir, img, []string{"hero pinned", ""}, at)
	if err != nil {
		t.Fatalf("writeShots: %v", err)
	}
	want := []string{
		filepath.Join(dir, "20260301_123005_hero_pinned.png"),
		filepath.Join(dir, "20260301_123005_unlabeled.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d = %q, want %q", i, p, want[i])
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		got, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if r, _, _, _ := got.At(1, 1).RGBA(); r>>8 != 200 {
			t.Errorf("%s: pixel red = %d, want 200", p, r>>8)
		}
	}
}
