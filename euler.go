// euler.go
package qgate

import (
	"math"
	"math/cmplx"
)

func cis(a float64) complex128 {
	return cmplx.Exp(complex(0, a))
}

// rzMat is the Z rotation diag(e^{-ia/2}, e^{ia/2}).
func rzMat(a float64) Matrix {
	return Matrix{
		{cis(-a / 2), 0},
		{0, cis(a / 2)},
	}
}

// ryMat is the Y rotation with real entries.
func ryMat(a float64) Matrix {
	c := complex(math.Cos(a/2), 0)
	s := complex(math.Sin(a/2), 0)
	return Matrix{
		{c, -s},
		{s, c},
	}
}

var pauliX = Matrix{
	{0, 1},
	{1, 0},
}

/*
zyzAngles extracts Euler angles (theta, phi, lambda) such that the input 2x2
unitary equals Rz(phi) Ry(theta) Rz(lambda) up to a global phase. The same
angles parameterize the equivalent U3 gate.
*/
func zyzAngles(u Matrix) (theta, phi, lambda float64) {
	const eps = 1e-12

	det := u[0][0]*u[1][1] - u[0][1]*u[1][0]
	p := cmplx.Sqrt(det)
	a := u[0][0] / p
	b := u[1][0] / p

	switch {
	case cmplx.Abs(b) < eps:
		// Diagonal: only a Z rotation remains.
		theta = 0
		lambda = 0
		phi = -2 * cmplx.Phase(a)
	case cmplx.Abs(a) < eps:
		// Anti-diagonal: a half turn about an equatorial axis.
		theta = math.Pi
		lambda = 0
		phi = 2 * cmplx.Phase(b)
	default:
		theta = 2 * math.Atan2(cmplx.Abs(b), cmplx.Abs(a))
		sum := -2 * cmplx.Phase(a) // phi + lambda
		diff := 2 * cmplx.Phase(b) // phi - lambda
		phi = (sum + diff) / 2
		lambda = (sum - diff) / 2
	}
	return theta, phi, lambda
}

// u3Mat is the matrix of U3(theta, phi, lambda), phase convention with a
// real upper-left entry.
func u3Mat(theta, phi, lambda float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{
		{c, -cis(lambda) * s},
		{cis(phi) * s, cis(phi + lambda) * c},
	}
}

/*
sqrt2x2 returns the principal square root of a 2x2 unitary. Unitaries are
normal, so the root is formed on the eigenbasis; the repeated-eigenvalue
case collapses to a scalar multiple of the identity.
*/
func sqrt2x2(u Matrix) Matrix {
	tr := u[0][0] + u[1][1]
	det := u[0][0]*u[1][1] - u[0][1]*u[1][0]
	disc := cmplx.Sqrt(tr*tr - 4*det)
	l1 := (tr + disc) / 2
	l2 := (tr - disc) / 2

	if cmplx.Abs(l1-l2) < 1e-12 {
		s := cmplx.Sqrt(l1)
		return Matrix{
			{s, 0},
			{0, s},
		}
	}

	// Eigenvector for l1, picking the better-conditioned candidate.
	v := [2]complex128{u[0][1], l1 - u[0][0]}
	alt := [2]complex128{l1 - u[1][1], u[1][0]}
	if cmplx.Abs(alt[0])+cmplx.Abs(alt[1]) > cmplx.Abs(v[0])+cmplx.Abs(v[1]) {
		v = alt
	}
	norm := complex(math.Hypot(cmplx.Abs(v[0]), cmplx.Abs(v[1])), 0)
	v[0] /= norm
	v[1] /= norm
	w := [2]complex128{-cmplx.Conj(v[1]), cmplx.Conj(v[0])}

	s1 := cmplx.Sqrt(l1)
	s2 := cmplx.Sqrt(l2)
	out := NewMatrix(2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			vi := [2]complex128{v[i], w[i]}
			vj := [2]complex128{v[j], w[j]}
			out[i][j] = s1*vi[0]*cmplx.Conj(vj[0]) + s2*vi[1]*cmplx.Conj(vj[1])
		}
	}
	return out
}

// nearIdentity2x2 reports whether a 2x2 unitary is the identity up to
// global phase: |Tr u| / 2 within tol of 1.
func nearIdentity2x2(u Matrix, tol float64) bool {
	return 1-cmplx.Abs(u[0][0]+u[1][1])/2 <= tol
}
