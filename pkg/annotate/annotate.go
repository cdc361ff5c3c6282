// Package annotate stamps captions onto decoded pictures.
package annotate

import (
	"image"

	"github.com/fogleman/gg"
)

const (
	padding   = 8.0
	barHeight = 24.0
)

// Label draws text in a translucent bar along the bottom edge and
// returns the annotated picture. The input picture is not modified; an
// empty text returns it unchanged.
func Label(img image.Image, text string) image.Image {
	if text == "" {
		return img
	}

	dc := gg.NewContextForImage(img)
	width := float64(dc.Width())
	height := float64(dc.Height())

	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(0, height-barHeight, width, barHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, padding, height-barHeight/2, 0, 0.35)

	return dc.Image()
}
