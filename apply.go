package colortransfer

import "image"

// ApplyTransform maps every pixel of img through m and returns a new opaque image
// with the same dimensions. Transformed colors are clamped to the 8-bit range.
func ApplyTransform(img image.Image, m Affine, opts ...func(o *Options)) *image.NRGBA {
	opt := applyOptions(opts)
	src := toNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallelFor(h, workerCount(h, opt.Workers), func(_, start, end int) {
		for y := start; y < end; y++ {
			in := src.Pix[y*src.Stride : y*src.Stride+w*4]
			out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
			for i := 0; i < len(in); i += 4 {
				c := m.Apply([3]float64{
					float64(in[i]) * invChannelValue,
					float64(in[i+1]) * invChannelValue,
					float64(in[i+2]) * invChannelValue,
				})
				out[i] = quantize(c[0])
				out[i+1] = quantize(c[1])
				out[i+2] = quantize(c[2])
				out[i+3] = 0xFF
			}
		}
	})

	return dst
}

// quantize converts a normalized channel value to 8 bits, saturating out of range values.
func quantize(v float64) uint8 {
	val := v * maxChannelValue
	if !(val > 0) {
		return 0
	}
	if val >= maxChannelValue {
		return 0xFF
	}
	return uint8(val + 0.5)
}
