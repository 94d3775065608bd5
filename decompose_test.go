package colortransfer

import (
	"errors"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func randomPSD(rnd *rand.Rand, rank int) *mat.SymDense {
	b := mat.NewDense(3, rank, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < rank; j++ {
			b.Set(i, j, rnd.NormFloat64()*0.1)
		}
	}
	var s mat.SymDense
	s.SymOuterK(1, b)
	return &s
}

func TestDecomposeReconstructs(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		rank := 1 + i%3
		cov := randomPSD(rnd, rank)

		d, err := Decompose(cov)
		if err != nil {
			t.Fatalf("decompose %d: %v", i, err)
		}

		for k := 0; k < 3; k++ {
			if d.Eigenvalues[k] < 0 {
				t.Fatalf("case %d: negative eigenvalue %v", i, d.Eigenvalues)
			}
			if k > 0 && d.Eigenvalues[k] > d.Eigenvalues[k-1] {
				t.Fatalf("case %d: eigenvalues not descending %v", i, d.Eigenvalues)
			}
		}
		assertOrthonormal(t, "rotation", d.Rotation)

		r := d.Reconstruct()
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				assertClose(t, "reconstruction", r.At(a, b), cov.At(a, b), 1e-12)
			}
		}
	}
}

func TestDecomposeDiagonal(t *testing.T) {
	d, err := Decompose(mat.NewSymDense(3, []float64{
		0.01, 0, 0,
		0, 0.09, 0,
		0, 0, 0.04,
	}))
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	want := [3]float64{0.09, 0.04, 0.01}
	for k := 0; k < 3; k++ {
		assertClose(t, "eigenvalue", d.Eigenvalues[k], want[k], 1e-14)
	}
	// The largest eigenvalue belongs to the green axis.
	assertClose(t, "first axis green component", abs(d.Rotation[1][0]), 1, 1e-12)
}

func TestDecomposeZero(t *testing.T) {
	d, err := Decompose(mat.NewSymDense(3, nil))
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	for k := 0; k < 3; k++ {
		if d.Eigenvalues[k] != 0 {
			t.Fatalf("eigenvalues: got %v want zeros", d.Eigenvalues)
		}
	}
	assertOrthonormal(t, "rotation", d.Rotation)
}

func TestDecomposeWrongSize(t *testing.T) {
	_, err := Decompose(mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	if !errors.Is(err, ErrDecomposition) {
		t.Fatalf("expected ErrDecomposition, got %v", err)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
