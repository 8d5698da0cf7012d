package debug

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 80), 0x66, 0xff})
		}
	}
	return img
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 21, 8, 20, 0, 0, time.UTC)
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"png", "shots/sunroom_2024-06-21_08-20-00.png"},
		{"BMP", "shots/sunroom_2024-06-21_08-20-00.bmp"},
		{"gif", "shots/sunroom_2024-06-21_08-20-00.png"},
	}
	for _, tt := range tests {
		sc := NewScreenshotCapture("shots", "sunroom", tt.format)
		sc.now = fixedClock
		if got := sc.GenerateFilename(); got != filepath.FromSlash(tt.want) {
			t.Errorf("format %q: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestCapturePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "sunroom", FormatPNG)
	sc.now = fixedClock

	path, err := sc.Capture(testImage())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestCaptureBMP(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "sunroom", FormatBMP)
	sc.now = fixedClock

	src := testImage()
	path, err := sc.Capture(src)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	want := src.RGBAAt(3, 2)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("pixel (3,2) = %d,%d,%d, want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestCaptureUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	sc := NewScreenshotCapture(filepath.Join(file, "sub"), "sunroom", FormatPNG)
	if _, err := sc.Capture(testImage()); err == nil {
		t.Error("expected error when the output dir is a file")
	}
}
