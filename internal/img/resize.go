package img

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// SourceDPI is the resolution assumed for every upload.
const SourceDPI = 96.0

// minUpscale skips resizing for factors that only differ from 1 by float noise.
const minUpscale = 1.01

// ScaleFactor returns how much a page must grow to reach targetDPI. It never
// goes below 1: pages are not downscaled.
func ScaleFactor(targetDPI int) float64 {
	return math.Max(1.0, float64(targetDPI)/SourceDPI)
}

// Rescale upsamples src with bicubic interpolation so its effective
// resolution approximates targetDPI.
func Rescale(src image.Image, targetDPI int) image.Image {
	scale := ScaleFactor(targetDPI)
	if scale <= minUpscale {
		return src
	}
	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	return imaging.Resize(src, w, h, imaging.CatmullRom)
}
