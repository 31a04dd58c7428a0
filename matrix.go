package qgate

import (
	"math"
	"math/cmplx"
)

// Matrix is a dense square complex matrix, row major.
type Matrix [][]complex128

// NewMatrix returns a zero matrix of the given dimension.
func NewMatrix(dim int) Matrix {
	m := make(Matrix, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	return m
}

// Identity returns the dim x dim identity matrix.
func Identity(dim int) Matrix {
	m := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		m[i][i] = 1
	}
	return m
}

func (m Matrix) Dim() int {
	return len(m)
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

// Mul returns the matrix product m * other.
func (m Matrix) Mul(other Matrix) Matrix {
	dim := m.Dim()
	out := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		for k := 0; k < dim; k++ {
			a := m[i][k]
			if a == 0 {
				continue
			}
			for j := 0; j < dim; j++ {
				out[i][j] += a * other[k][j]
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	dim := m.Dim()
	out := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			out[j][i] = cmplx.Conj(m[i][j])
		}
	}
	return out
}

// IsSquare reports whether every row length matches the row count.
func (m Matrix) IsSquare() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return len(m) > 0
}

// IsUnitary reports whether m† m is the identity within tol, entrywise.
func (m Matrix) IsUnitary(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	dim := m.Dim()
	prod := m.Dagger().Mul(m)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod[i][j]-want) > tol {
				return false
			}
		}
	}
	return true
}

// Fidelity measures how close two same-sized unitaries are, ignoring global
// phase: |Tr(a† b)| / dim. Equal matrices score 1.
func Fidelity(a, b Matrix) float64 {
	dim := a.Dim()
	var tr complex128
	for i := 0; i < dim; i++ {
		for k := 0; k < dim; k++ {
			tr += cmplx.Conj(a[k][i]) * b[k][i]
		}
	}
	return cmplx.Abs(tr) / float64(dim)
}

// wrapAngle reduces an angle to (-pi, pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// rotationSignificant reports whether a rotation by angle a is
// distinguishable from the identity (up to global phase) at tolerance tol.
func rotationSignificant(a, tol float64) bool {
	return math.Abs(wrapAngle(a)) > tol
}
