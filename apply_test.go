package colortransfer

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestQuantizeSaturates(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want uint8
	}{
		{-3.5, 0},
		{0, 0},
		{0.6 / 255, 1},
		{0.4 / 255, 0},
		{128.0 / 255, 128},
		{1, 255},
		{1.0001, 255},
		{42, 255},
	} {
		if got := quantize(tc.in); got != tc.want {
			t.Fatalf("quantize(%v): got %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestApplyTransformIdentity(t *testing.T) {
	img := correlatedImage(31, 17, 11, [3]float64{128, 128, 128}, [3][3]float64{
		{60, 0, 0},
		{0, 60, 0},
		{0, 0, 60},
	})
	out := ApplyTransform(img, IdentityAffine())
	if out.Rect != img.Rect {
		t.Fatalf("bounds: got %v want %v", out.Rect, img.Rect)
	}
	if !bytes.Equal(out.Pix, img.Pix) {
		t.Fatal("identity transform changed pixels")
	}
}

func TestApplyTransformClamps(t *testing.T) {
	img := makeImage(2, 1, func(x, _ int) color.NRGBA {
		if x == 0 {
			return color.NRGBA{R: 10, G: 128, B: 250, A: 0xFF}
		}
		return color.NRGBA{R: 250, G: 128, B: 10, A: 0xFF}
	})

	m := Affine{
		{2, 0, 0, -0.4},
		{0, 2, 0, -0.4},
		{0, 0, 2, -0.4},
		{0, 0, 0, 1},
	}
	out := ApplyTransform(img, m)

	want := []uint8{
		0, 154, 255, 0xFF,
		255, 154, 0, 0xFF,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Fatalf("pixels: got %v want %v", out.Pix, want)
	}
}

func TestApplyTransformDropsAlpha(t *testing.T) {
	img := solidImage(3, 3, color.NRGBA{R: 90, G: 60, B: 30, A: 0x80})
	out := ApplyTransform(img, IdentityAffine())
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 90 || out.Pix[i+1] != 60 || out.Pix[i+2] != 30 || out.Pix[i+3] != 0xFF {
			t.Fatalf("pixel %d: got %v", i/4, out.Pix[i:i+4])
		}
	}
}

func TestApplyTransformParallelMatchesSerial(t *testing.T) {
	img := correlatedImage(64, 129, 5, [3]float64{100, 120, 140}, [3][3]float64{
		{40, 10, 0},
		{0, 40, 10},
		{10, 0, 40},
	})
	m := Affine{
		{0.8, 0.1, 0.05, 0.02},
		{-0.2, 1.1, 0.1, 0.01},
		{0.05, 0.05, 0.9, -0.03},
		{0, 0, 0, 1},
	}
	serial := ApplyTransform(img, m, func(o *Options) { o.Workers = 1 })
	parallel := ApplyTransform(img, m, func(o *Options) { o.Workers = 7 })
	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Fatal("parallel output differs from serial")
	}
}

func TestApplyTransformYCbCrInput(t *testing.T) {
	ycc := image.NewYCbCr(image.Rect(10, 10, 14, 12), image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i] = 200
		ycc.Cb[i] = 128
		ycc.Cr[i] = 128
	}
	out := ApplyTransform(ycc, IdentityAffine())
	if out.Rect != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds: got %v", out.Rect)
	}
	r, g, b, _ := ycc.At(10, 10).RGBA()
	got := out.NRGBAAt(0, 0)
	if got.R != uint8(r>>8) || got.G != uint8(g>>8) || got.B != uint8(b>>8) {
		t.Fatalf("pixel: got %v want %d %d %d", got, r>>8, g>>8, b>>8)
	}
}
