package frame

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToYCbCr420 returns img as a 4:2:0 subsampled YCbCr picture, the
// layout still-image encoders expect. Pictures already in that layout
// are returned as-is; anything else goes through an RGB intermediate.
// Odd trailing rows/columns are cropped, since 4:2:0 chroma planes
// cover pixel pairs.
func ToYCbCr420(img image.Image) (*image.YCbCr, error) {
	if img == nil {
		return nil, errNilPicture
	}

	if pic, ok := img.(*image.YCbCr); ok && pic.SubsampleRatio == image.YCbCrSubsampleRatio420 {
		return pic, nil
	}

	bounds := img.Bounds()
	width := bounds.Dx() &^ 1
	height := bounds.Dy() &^ 1
	if width == 0 || height == 0 {
		return nil, errTooSmall
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Copy(rgba, image.Point{}, img,
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+width, bounds.Min.Y+height),
		draw.Src, nil)

	pic := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := rgba.RGBAAt(x, y)
			yy, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
			pic.Y[y*pic.YStride+x] = yy
			if x%2 == 0 && y%2 == 0 {
				ci := (y/2)*pic.CStride + x/2
				pic.Cb[ci] = cb
				pic.Cr[ci] = cr
			}
		}
	}

	return pic, nil
}
