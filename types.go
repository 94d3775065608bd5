package colortransfer

import (
	"errors"
	"image"
)

var (
	// ErrNilImage is returned when the source or target image is nil.
	ErrNilImage = errors.New("image is nil")
	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("image is empty")
	// ErrChannelMismatch is returned when source and target differ in channel count.
	ErrChannelMismatch = errors.New("source and target channel counts differ")
	// ErrUnsupportedChannels is returned when images are not 3-channel color.
	ErrUnsupportedChannels = errors.New("3-channel color images required")
	// ErrDecomposition is returned when the covariance matrix can not be factorized.
	ErrDecomposition = errors.New("covariance decomposition failed")
)

// ColorStats holds the first and second order color statistics of an image.
// Values are computed on colors normalized to [0,1].
type ColorStats struct {
	Mean       [3]float64
	Covariance [3][3]float64
	Pixels     int
}

// Decomposition is a rotation and eigenvalues of a color covariance matrix.
// Column k of Rotation is the principal axis paired with Eigenvalues[k].
type Decomposition struct {
	Rotation    [3][3]float64
	Eigenvalues [3]float64
}

// AxisMatch is the outcome of resolving axis correspondence between source and target.
type AxisMatch struct {
	Source      Decomposition
	Target      Decomposition
	SourceScale [3]float64 // square roots of source eigenvalues
	TargetScale [3]float64 // square roots of target eigenvalues
	Permutation [3]int     // source column placed at position k
	Flipped     [3]bool
	Score       float64
}

// Options controls the color transfer.
type Options struct {
	// Ruggedize enables axis matching and sign correction between decompositions.
	Ruggedize bool
	// DegenerateThreshold is the target scale at or below which its reciprocal is replaced by zero.
	DegenerateThreshold float64
	// Workers limits parallel row workers, 0 means GOMAXPROCS.
	Workers int
	// StatsMaxSide downsamples images before statistics when they exceed it, 0 disables.
	StatsMaxSide uint
	// Quality is the JPEG quality used when writing files.
	Quality int
}

// Result contains the transferred image and the intermediate values used to produce it.
type Result struct {
	Image  *image.NRGBA
	Matrix Affine
	Source ColorStats
	Target ColorStats
	Match  AxisMatch
}

func defaultOptions() Options {
	return Options{
		Ruggedize:           true,
		DegenerateThreshold: defaultDegenerateThreshold,
		Quality:             defaultQuality,
	}
}

func applyOptions(opts []func(o *Options)) Options {
	opt := defaultOptions()
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.DegenerateThreshold < 0 {
		opt.DegenerateThreshold = 0
	}
	return opt
}
