package annotate

import (
	"image"
	"image/color"
	"testing"
)

func TestLabelEmptyTextReturnsInput(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))

	if got := Label(src, ""); got != src {
		t.Fatal("expected empty label to return the input picture")
	}
}

func TestLabelPreservesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 128, 96))

	got := Label(src, "cam-01")
	if got.Bounds().Dx() != 128 || got.Bounds().Dy() != 96 {
		t.Fatalf("bounds changed: %v", got.Bounds())
	}
}

func TestLabelDrawsBar(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	got := Label(src, "cam-01")

	// Inside the bottom bar the white background must be darkened.
	r, g, b, _ := got.At(32, 40).RGBA()
	if r >= 0xffff && g >= 0xffff && b >= 0xffff {
		t.Fatal("expected label bar to darken bottom edge")
	}

	// Above the bar the picture is untouched.
	r, g, b, _ = got.At(32, 10).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatal("expected pixels above the bar to be unchanged")
	}
}
