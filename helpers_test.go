package colortransfer

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

func makeImage(w, h int, fn func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fn(x, y))
		}
	}
	return img
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	return makeImage(w, h, func(int, int) color.NRGBA { return c })
}

// correlatedImage fills pixels with normally distributed colors around center, mixed by
// a fixed matrix so that the covariance has off-diagonal terms.
func correlatedImage(w, h int, seed int64, center [3]float64, mix [3][3]float64) *image.NRGBA {
	rnd := rand.New(rand.NewSource(seed))
	return makeImage(w, h, func(int, int) color.NRGBA {
		z := [3]float64{rnd.NormFloat64(), rnd.NormFloat64(), rnd.NormFloat64()}
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v := center[i] + mix[i][0]*z[0] + mix[i][1]*z[1] + mix[i][2]*z[2]
			c[i] = uint8(math.Max(0, math.Min(255, math.Round(v))))
		}
		return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
	})
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol || math.IsNaN(got) {
		t.Fatalf("%s: got %.9f want %.9f (tol %g)", label, got, want, tol)
	}
}

func assertOrthonormal(t *testing.T, label string, r [3][3]float64) {
	t.Helper()
	for a := 0; a < 3; a++ {
		for b := a; b < 3; b++ {
			var dot float64
			for i := 0; i < 3; i++ {
				dot += r[i][a] * r[i][b]
			}
			want := 0.0
			if a == b {
				want = 1
			}
			assertClose(t, label, dot, want, 1e-9)
		}
	}
}

// rotationFromAngles returns Rz(c)·Ry(b)·Rx(a).
func rotationFromAngles(a, b, c float64) [3][3]float64 {
	ca, sa := math.Cos(a), math.Sin(a)
	cb, sb := math.Cos(b), math.Sin(b)
	cc, sc := math.Cos(c), math.Sin(c)
	return [3][3]float64{
		{cc * cb, cc*sb*sa - sc*ca, cc*sb*ca + sc*sa},
		{sc * cb, sc*sb*sa + cc*ca, sc*sb*ca - cc*sa},
		{-sb, cb * sa, cb * ca},
	}
}
