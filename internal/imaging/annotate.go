package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Box is a screen rectangle to outline, with an optional label drawn at its
// top-left corner.
type Box struct {
	Rect  image.Rectangle
	Label string
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 200}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// glyphHeight is the line height of basicfont.Face7x13.
const glyphHeight = 13

// Annotate returns a copy of img with every box outlined and labelled.
// Box coordinates are in the image's coordinate space; parts falling outside
// the image are clipped.
func Annotate(img image.Image, boxes []Box) *image.RGBA {
	rgba := ToRGBA(img)
	for _, b := range boxes {
		r := b.Rect.Canon().Intersect(rgba.Bounds())
		if r.Empty() {
			continue
		}
		drawOutline(rgba, r, boxColor)
		if b.Label != "" {
			drawLabel(rgba, b.Label, r.Min.X+2, r.Min.Y+glyphHeight)
		}
	}
	return rgba
}

// ToRGBA converts any image to a freshly allocated RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawOutline draws a one pixel border just inside r, which must already be
// clipped to the image.
func drawOutline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel draws text with a dark outline so it stays readable on any
// background. (x, y) is the baseline origin.
func drawLabel(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				drawString(img, text, x+dx, y+dy, outlineColor)
			}
		}
	}
	drawString(img, text, x, y, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
