package colortransfer

import (
	"image"

	"github.com/nfnt/resize"
)

// statsSample shrinks img so that neither side exceeds maxSide.
// Filtering attenuates fine texture, so covariance of the sample is slightly lower than at full size.
func statsSample(img *image.NRGBA, maxSide uint) *image.NRGBA {
	if maxSide == 0 {
		return img
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if uint(w) <= maxSide && uint(h) <= maxSide {
		return img
	}
	thumb := resize.Thumbnail(maxSide, maxSide, img, resize.Bilinear)
	Logger().Debug("downsampled for statistics",
		"from", img.Rect.Size(),
		"to", thumb.Bounds().Size(),
	)
	return toNRGBA(thumb)
}
