package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestProcessCoverResizesLargeImage(t *testing.T) {
	full, thumb, err := ProcessCover(testImage(2400, 1200))
	if err != nil {
		t.Fatalf("ProcessCover: %v", err)
	}

	fullImg, _, err := image.Decode(bytes.NewReader(full))
	if err != nil {
		t.Fatalf("decode full: %v", err)
	}
	if got := fullImg.Bounds().Dx(); got != CoverMaxWidth {
		t.Fatalf("full width = %d, want %d", got, CoverMaxWidth)
	}

	thumbImg, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumb: %v", err)
	}
	if got := thumbImg.Bounds().Dx(); got != ThumbWidth {
		t.Fatalf("thumb width = %d, want %d", got, ThumbWidth)
	}
}

func TestProcessCoverNeverUpscales(t *testing.T) {
	full, _, err := ProcessCover(testImage(800, 400))
	if err != nil {
		t.Fatalf("ProcessCover: %v", err)
	}
	fullImg, _, err := image.Decode(bytes.NewReader(full))
	if err != nil {
		t.Fatalf("decode full: %v", err)
	}
	if got := fullImg.Bounds().Dx(); got != 800 {
		t.Fatalf("full width = %d, small image was rescaled", got)
	}
}

func TestProcessCoverRejectsGarbage(t *testing.T) {
	if _, _, err := ProcessCover([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}
