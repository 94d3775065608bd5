package colortransfer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a 4x4 homogeneous color transform in row-major order.
type Affine [4][4]float64

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// ComposeTransform builds M = T_s · R_s · S_s · S_t · R_t · T_t from matched statistics.
//
// Read right to left, a target color is moved to the target mean, rotated into the target
// principal axes, divided by the target scales, multiplied by the source scales, rotated into
// the source orientation and moved to the source mean.
//
// A target scale at or below Options.DegenerateThreshold gets a zero reciprocal, so that axis
// collapses onto the source mean instead of producing infinite values.
func ComposeTransform(source, target ColorStats, m AxisMatch, opts ...func(o *Options)) Affine {
	opt := applyOptions(opts)

	ts := translation(source.Mean, 1)
	tt := translation(target.Mean, -1)
	rs := embedRotation(m.Source.rotationDense())
	rt := embedRotation(invertRotation(m.Target.rotationDense()))

	var inv [3]float64
	for k := 0; k < 3; k++ {
		if m.TargetScale[k] <= opt.DegenerateThreshold {
			Logger().Warn("degenerate target axis, collapsing onto source mean",
				"axis", k,
				"scale", m.TargetScale[k],
				"threshold", opt.DegenerateThreshold,
			)
			continue
		}
		inv[k] = 1 / m.TargetScale[k]
	}
	ss := scale(m.SourceScale)
	st := scale(inv)

	var out mat.Dense
	out.Product(ts, rs, ss, st, rt, tt)

	a := affineFromDense(&out)
	Logger().Debug("transform composed", "matrix", a)
	return a
}

func translation(v [3]float64, sign float64) *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	for i := 0; i < 3; i++ {
		m.Set(i, 3, sign*v[i])
	}
	return m
}

func embedRotation(r mat.Matrix) *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, r.At(i, j))
		}
	}
	m.Set(3, 3, 1)
	return m
}

// invertRotation returns the inverse of r, using its transpose when r is too close to singular.
func invertRotation(r *mat.Dense) mat.Matrix {
	var inv mat.Dense
	if err := inv.Inverse(r); err != nil {
		Logger().Debug("rotation inverse ill-conditioned, using transpose", "error", err)
		return r.T()
	}
	return &inv
}

func scale(s [3]float64) *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, s[2], 0,
		0, 0, 0, 1,
	})
}

func affineFromDense(m *mat.Dense) Affine {
	var a Affine
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = m.At(i, j)
		}
	}
	return a
}

// Dense returns the transform as a gonum matrix.
func (a Affine) Dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		data = append(data, a[i][:]...)
	}
	return mat.NewDense(4, 4, data)
}

// Apply transforms a color given as homogeneous (r, g, b, 1).
// The homogeneous component of the product is discarded, not divided through.
func (a Affine) Apply(c [3]float64) [3]float64 {
	return [3]float64{
		a[0][0]*c[0] + a[0][1]*c[1] + a[0][2]*c[2] + a[0][3],
		a[1][0]*c[0] + a[1][1]*c[1] + a[1][2]*c[2] + a[1][3],
		a[2][0]*c[0] + a[2][1]*c[1] + a[2][2]*c[2] + a[2][3],
	}
}

// IsFinite reports whether every coefficient is a finite number.
func (a Affine) IsFinite() bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.IsNaN(a[i][j]) || math.IsInf(a[i][j], 0) {
				return false
			}
		}
	}
	return true
}
