// Package imaging encodes, scales and annotates screenshots.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// EncodePNG encodes img as PNG. A scale in (0, 1) shrinks the image first;
// any other value keeps the original size.
func EncodePNG(img image.Image, scale float64) ([]byte, error) {
	if scale > 0 && scale < 1 {
		img = Scale(img, scale)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Scale resizes img by factor, keeping the aspect ratio.
func Scale(img image.Image, factor float64) image.Image {
	width := uint(float64(img.Bounds().Dx()) * factor)
	if width == 0 {
		width = 1
	}
	return resize.Resize(width, 0, img, resize.Lanczos3)
}
