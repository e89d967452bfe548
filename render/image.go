package render

import (
	"image"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// Downscale resizes img to at most maxWidth pixels wide, preserving aspect
// ratio. Images already within the cap are returned unchanged. Catmull-Rom
// resampling keeps glyph edges sharp enough for OCR.
func Downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	scale := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * scale)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// Grayscale converts an image to 8-bit grayscale.
func Grayscale(img image.Image) image.Image {
	if _, ok := img.(*image.Gray); ok {
		return img
	}
	bounds := img.Bounds()
	dst := image.NewGray(bounds)
	stddraw.Draw(dst, bounds, img, bounds.Min, stddraw.Src)
	return dst
}
