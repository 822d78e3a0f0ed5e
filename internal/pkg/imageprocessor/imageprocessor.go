package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// Cover sizes served on the blog and product pages.
const (
	CoverMaxWidth = 1600
	ThumbWidth    = 480
	jpegQuality   = 85
)

// ProcessCover decodes an uploaded cover image and renders the full-size and
// thumbnail variants as JPEG. Images smaller than the target are left at
// their original size, never upscaled.
func ProcessCover(data []byte) (full []byte, thumb []byte, err error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode cover image: %w", err)
	}

	fullImg := src
	if src.Bounds().Dx() > CoverMaxWidth {
		fullImg = imaging.Resize(src, CoverMaxWidth, 0, imaging.Lanczos)
	}

	thumbImg := imaging.Resize(src, ThumbWidth, 0, imaging.Lanczos)

	full, err = encodeJPEG(fullImg)
	if err != nil {
		return nil, nil, err
	}
	thumb, err = encodeJPEG(thumbImg)
	if err != nil {
		return nil, nil, err
	}
	return full, thumb, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
