package colortransfer

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// ComputeStats returns the mean and covariance of the image pixel colors normalized to [0,1].
// Every pixel is an independent sample, and covariance is normalized by the pixel count.
func ComputeStats(img image.Image, opts ...func(o *Options)) (ColorStats, error) {
	if err := validateImage(img); err != nil {
		return ColorStats{}, err
	}
	opt := applyOptions(opts)
	return computeStats(statsSample(toNRGBA(img), opt.StatsMaxSide), opt.Workers), nil
}

type momentSums struct {
	sum   [3]float64
	cross [3][3]float64
}

func computeStats(img *image.NRGBA, maxWorkers int) ColorStats {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := w * h
	workers := workerCount(h, maxWorkers)
	partials := make([]momentSums, workers)

	parallelFor(h, workers, func(chunk, start, end int) {
		p := &partials[chunk]
		for y := start; y < end; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w*4]
			for i := 0; i < len(row); i += 4 {
				p.sum[0] += float64(row[i]) * invChannelValue
				p.sum[1] += float64(row[i+1]) * invChannelValue
				p.sum[2] += float64(row[i+2]) * invChannelValue
			}
		}
	})

	var st ColorStats
	st.Pixels = n
	for c := range partials {
		for i := 0; i < 3; i++ {
			st.Mean[i] += partials[c].sum[i]
		}
	}
	for i := 0; i < 3; i++ {
		st.Mean[i] /= float64(n)
	}

	mean := st.Mean
	parallelFor(h, workers, func(chunk, start, end int) {
		p := &partials[chunk]
		for y := start; y < end; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w*4]
			for i := 0; i < len(row); i += 4 {
				d := [3]float64{
					float64(row[i])*invChannelValue - mean[0],
					float64(row[i+1])*invChannelValue - mean[1],
					float64(row[i+2])*invChannelValue - mean[2],
				}
				for r := 0; r < 3; r++ {
					for c := r; c < 3; c++ {
						p.cross[r][c] += d[r] * d[c]
					}
				}
			}
		}
	})

	for c := range partials {
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				st.Covariance[i][j] += partials[c].cross[i][j]
			}
		}
	}
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			v := st.Covariance[i][j] / float64(n)
			st.Covariance[i][j] = v
			st.Covariance[j][i] = v
		}
	}

	Logger().Debug("color statistics",
		"pixels", n,
		"mean", st.Mean,
		"covariance", st.Covariance,
	)

	return st
}

// CovarianceMatrix returns the covariance as a symmetric gonum matrix.
func (s ColorStats) CovarianceMatrix() *mat.SymDense {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, s.Covariance[i][:]...)
	}
	return mat.NewSymDense(3, data)
}

func (s ColorStats) String() string {
	return fmt.Sprintf("mean=%.6f cov=%.6f", s.Mean, s.Covariance)
}
