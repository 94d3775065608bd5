package colortransfer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Decompose factorizes a symmetric 3x3 covariance matrix into an orthonormal rotation
// and its eigenvalues using singular value decomposition.
//
// Eigenvalues come out in descending order. Each rotation column is defined up to sign,
// and columns of repeated eigenvalues are defined up to a rotation within their subspace.
func Decompose(cov mat.Symmetric) (Decomposition, error) {
	if n := cov.SymmetricDim(); n != 3 {
		return Decomposition{}, fmt.Errorf("%w: expected 3x3 matrix, got %dx%d", ErrDecomposition, n, n)
	}

	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDFull); !ok {
		return Decomposition{}, ErrDecomposition
	}

	var u mat.Dense
	svd.UTo(&u)
	values := svd.Values(nil)

	var d Decomposition
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Rotation[i][j] = u.At(i, j)
		}
		d.Eigenvalues[i] = values[i]
	}

	Logger().Debug("covariance decomposed", "eigenvalues", d.Eigenvalues)

	return d, nil
}

// Reconstruct returns Rotation·diag(Eigenvalues)·Rotationᵀ.
func (d Decomposition) Reconstruct() *mat.Dense {
	u := d.rotationDense()
	var r mat.Dense
	r.Product(u, mat.NewDiagDense(3, d.Eigenvalues[:]), u.T())
	return &r
}

func (d Decomposition) rotationDense() *mat.Dense {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, d.Rotation[i][:]...)
	}
	return mat.NewDense(3, 3, data)
}

func (d Decomposition) column(k int) [3]float64 {
	return [3]float64{d.Rotation[0][k], d.Rotation[1][k], d.Rotation[2][k]}
}

func (d *Decomposition) setColumn(k int, v [3]float64) {
	d.Rotation[0][k] = v[0]
	d.Rotation[1][k] = v[1]
	d.Rotation[2][k] = v[2]
}
