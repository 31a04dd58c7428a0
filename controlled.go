// controlled.go
package qgate

import (
	"math"
	"math/cmplx"
)

/*
appendMultiControlled appends operations applying the 2x2 unitary g to the
register position target when every control matches its required bit
value. Zero-valued controls are handled by conjugating with X; the
positive-control core uses the V / V-dagger recursion, so everything lands
in the {CX, U3} basis.
*/
func appendMultiControlled(c *Circuit, g Matrix, target int, controls []control, tol float64) {
	var inverted []Qubit
	for _, ctl := range controls {
		if ctl.val == 0 {
			inverted = append(inverted, c.Register[ctl.q])
		}
	}
	for _, q := range inverted {
		c.Append(U3{Theta: math.Pi, Phi: 0, Lambda: math.Pi}, q)
	}

	positives := make([]Qubit, len(controls))
	for i, ctl := range controls {
		positives[i] = c.Register[ctl.q]
	}
	appendControlled(c, g, c.Register[target], positives, tol)

	for _, q := range inverted {
		c.Append(U3{Theta: math.Pi, Phi: 0, Lambda: math.Pi}, q)
	}
}

// appendControlled applies g to target under positive controls only.
// k >= 2 controls recurse per Barenco et al.: with V the square root of g,
//
//	C^k(g) = C(V) . C^{k-1}(X) . C(V†) . C^{k-1}(X) . C^{k-1}(V)
//
// where the final factor drops the last control.
func appendControlled(c *Circuit, g Matrix, target Qubit, controls []Qubit, tol float64) {
	switch len(controls) {
	case 0:
		appendU3(c, target, g, tol)
	case 1:
		appendControlledU(c, g, controls[0], target, tol)
	default:
		v := sqrt2x2(g)
		last := controls[len(controls)-1]
		rest := controls[:len(controls)-1]

		appendControlledU(c, v, last, target, tol)
		appendControlled(c, pauliX, last, rest, tol)
		appendControlledU(c, v.Dagger(), last, target, tol)
		appendControlled(c, pauliX, last, rest, tol)
		appendControlled(c, v, target, rest, tol)
	}
}

/*
appendControlledU applies a singly-controlled 2x2 unitary using the ABC
construction: factor u as e^{ia} W with det W = 1, write
W = Rz(b) Ry(y) Rz(d), and use

	A = Rz(b) Ry(y/2)
	B = Ry(-y/2) Rz(-(d+b)/2)
	C = Rz((d-b)/2)

so that A X B X C = W and A B C = I. The phase a becomes a Z phase on the
control. A plain X collapses to a native CX.
*/
func appendControlledU(c *Circuit, u Matrix, ctrl, target Qubit, tol float64) {
	if isPauliX(u) {
		c.Append(CX{}, ctrl, target)
		return
	}

	det := u[0][0]*u[1][1] - u[0][1]*u[1][0]
	alpha := cmplx.Phase(det) / 2
	w := Matrix{
		{u[0][0] * cis(-alpha), u[0][1] * cis(-alpha)},
		{u[1][0] * cis(-alpha), u[1][1] * cis(-alpha)},
	}
	beta, gamma, delta := splitZYZ(w)

	a := rzMat(beta).Mul(ryMat(gamma / 2))
	b := ryMat(-gamma / 2).Mul(rzMat(-(delta + beta) / 2))
	cc := rzMat((delta - beta) / 2)

	appendU3(c, target, cc, tol)
	c.Append(CX{}, ctrl, target)
	appendU3(c, target, b, tol)
	c.Append(CX{}, ctrl, target)
	appendU3(c, target, a, tol)

	if rotationSignificant(alpha, tol) {
		// diag(1, e^{ia}) on the control, exactly U3(0, 0, a).
		c.Append(U3{Theta: 0, Phi: 0, Lambda: alpha}, ctrl)
	}
}

// splitZYZ renames zyzAngles into the (beta, gamma, delta) the ABC
// construction expects.
func splitZYZ(w Matrix) (beta, gamma, delta float64) {
	gamma, beta, delta = zyzAngles(w)
	return beta, gamma, delta
}

func isPauliX(u Matrix) bool {
	return cmplx.Abs(u[0][0]) < 1e-12 &&
		cmplx.Abs(u[1][1]) < 1e-12 &&
		cmplx.Abs(u[0][1]-1) < 1e-12 &&
		cmplx.Abs(u[1][0]-1) < 1e-12
}
