package colortransfer

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// channelCount reports how many color channels an image carries, ignoring alpha.
func channelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	default:
		return 3
	}
}

func validateImage(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())
	}
	return nil
}

func validatePair(source, target image.Image) error {
	if err := validateImage(source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := validateImage(target); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	sc, tc := channelCount(source), channelCount(target)
	if sc != tc {
		return fmt.Errorf("%w: %d vs %d", ErrChannelMismatch, sc, tc)
	}
	if sc != 3 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedChannels, sc)
	}
	return nil
}

// toNRGBA returns img as an 8-bit non-premultiplied image with bounds starting at (0,0).
// The input is returned as is when it already has that layout.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
