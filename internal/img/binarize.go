package img

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Mode selects the thresholding strategy.
type Mode int

const (
	ModeAdaptive Mode = iota
	ModeFixed
)

// Adaptive thresholding parameters: neighbourhood size and the constant
// subtracted from the local mean.
const (
	AdaptiveBlockSize = 41
	AdaptiveOffset    = 11
)

// Binarization is the explicit choice between adaptive and fixed thresholding.
// Threshold is only read in ModeFixed.
type Binarization struct {
	Mode      Mode
	Threshold uint8
}

func Adaptive() Binarization { return Binarization{Mode: ModeAdaptive} }

func Fixed(threshold uint8) Binarization {
	return Binarization{Mode: ModeFixed, Threshold: threshold}
}

func (b Binarization) String() string {
	if b.Mode == ModeFixed {
		return fmt.Sprintf("fixed(%d)", b.Threshold)
	}
	return "adaptive"
}

// Binarize converts src to grayscale and then to pure black (0) and white (255).
func Binarize(src image.Image, b Binarization) *image.Gray {
	gray := imaging.Grayscale(src)
	bounds := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	var mean *image.NRGBA
	if b.Mode != ModeFixed {
		mean = imaging.Blur(gray, gaussianSigma(AdaptiveBlockSize))
	}

	for y := 0; y < bounds.Dy(); y++ {
		row := y * gray.Stride
		for x := 0; x < bounds.Dx(); x++ {
			v := int(gray.Pix[row+x*4])
			cut := int(b.Threshold)
			if mean != nil {
				cut = int(mean.Pix[y*mean.Stride+x*4]) - AdaptiveOffset
			}
			if v > cut {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// gaussianSigma derives the kernel sigma for a block size the way OpenCV does
// for adaptive thresholding. For 41 this gives 6.5, and imaging.Blur then uses
// a radius of ceil(3*6.5) = 20, i.e. a 41 pixel kernel.
func gaussianSigma(block int) float64 {
	return 0.3*((float64(block)-1)*0.5-1) + 0.8
}
