package qgate

import (
	"fmt"
	"math"
	"math/cmplx"
)

// unitaryCheckTol bounds how far from unitary an input matrix may be
// before synthesis refuses it.
const unitaryCheckTol = 1e-8

type twoLevel struct {
	s, t int
	m    Matrix // 2x2, row 0 addressing basis state s
}

/*
synthesize decomposes a unitary into a circuit over the universal
{CX, U3} basis. The matrix is reduced to a diagonal of phases by two-level
complex Givens rotations; each two-level unitary is then realized with
Gray-code relocation and multi-controlled single-qubit gates. The result
matches the input up to global phase.
*/
func synthesize(m Matrix, register []Qubit, tol float64) (*Circuit, error) {
	n := len(register)
	dim := 1 << n
	if !m.IsSquare() || m.Dim() != dim {
		return nil, fmt.Errorf("matrix must be %dx%d for %d qubits, got %dx%d", dim, dim, n, len(m), len(m))
	}
	if !m.IsUnitary(unitaryCheckTol) {
		return nil, fmt.Errorf("matrix is not unitary within %g", unitaryCheckTol)
	}

	v := m.Clone()
	var rotations []twoLevel
	for col := 0; col < dim-1; col++ {
		for row := dim - 1; row > col; row-- {
			beta := v[row][col]
			if cmplx.Abs(beta) <= 1e-14 {
				v[row][col] = 0
				continue
			}
			alpha := v[col][col]
			nrm := complex(math.Hypot(cmplx.Abs(alpha), cmplx.Abs(beta)), 0)
			g := Matrix{
				{cmplx.Conj(alpha) / nrm, cmplx.Conj(beta) / nrm},
				{beta / nrm, -alpha / nrm},
			}
			for k := col; k < dim; k++ {
				a, b := v[col][k], v[row][k]
				v[col][k] = g[0][0]*a + g[0][1]*b
				v[row][k] = g[1][0]*a + g[1][1]*b
			}
			rotations = append(rotations, twoLevel{s: col, t: row, m: g})
		}
	}

	// v is now diagonal: m = G1† G2† ... Gk† D. Circuit order applies D
	// first, then the daggered rotations in reverse discovery order.
	c := NewCircuit(register)
	for i := 0; i < dim; i++ {
		d := v[i][i]
		if cmplx.Abs(d-1) <= tol {
			continue
		}
		partner := i ^ 1
		if i < partner {
			emitTwoLevel(c, i, partner, Matrix{{d, 0}, {0, 1}}, tol)
		} else {
			emitTwoLevel(c, partner, i, Matrix{{1, 0}, {0, d}}, tol)
		}
	}
	for i := len(rotations) - 1; i >= 0; i-- {
		r := rotations[i]
		emitTwoLevel(c, r.s, r.t, r.m.Dagger(), tol)
	}

	return fuseU3Runs(c, tol), nil
}

// stateBit extracts the bit of basis state s belonging to register
// position q (position 0 is the most significant bit of n).
func stateBit(s, q, n int) int {
	return (s >> (n - 1 - q)) & 1
}

/*
emitTwoLevel appends operations implementing a unitary that acts as the 2x2
matrix m on the basis-state pair (s, t) and as the identity elsewhere. When
s and t differ in more than one bit, the s amplitude is relocated along a
Gray-code path until the pair differs in a single bit, the core gate is
applied there, and the relocation is undone.
*/
func emitTwoLevel(c *Circuit, s, t int, m Matrix, tol float64) {
	n := len(c.Register)
	var diffs []int
	for q := 0; q < n; q++ {
		if stateBit(s, q, n) != stateBit(t, q, n) {
			diffs = append(diffs, q)
		}
	}

	cur := s
	for _, q := range diffs[:len(diffs)-1] {
		appendMultiControlled(c, pauliX, q, controlsFrom(cur, q, n), tol)
		cur ^= 1 << (n - 1 - q)
	}

	core := diffs[len(diffs)-1]
	g := m
	if stateBit(cur, core, n) == 1 {
		// The relocated s occupies the |1> branch; reorient the gate.
		g = Matrix{
			{m[1][1], m[1][0]},
			{m[0][1], m[0][0]},
		}
	}
	appendMultiControlled(c, g, core, controlsFrom(cur, core, n), tol)

	for i := len(diffs) - 2; i >= 0; i-- {
		q := diffs[i]
		cur ^= 1 << (n - 1 - q)
		appendMultiControlled(c, pauliX, q, controlsFrom(cur, q, n), tol)
	}
}

// control fixes a register position to a required bit value.
type control struct {
	q   int
	val int
}

// controlsFrom derives the control pattern matching state on every
// register position except exclude.
func controlsFrom(state, exclude, n int) []control {
	controls := make([]control, 0, n-1)
	for q := 0; q < n; q++ {
		if q == exclude {
			continue
		}
		controls = append(controls, control{q: q, val: stateBit(state, q, n)})
	}
	return controls
}

/*
fuseU3Runs collapses each maximal run of single-qubit gates on one qubit
into at most one U3, dropping runs that amount to the identity. Two-qubit
gates flush the pending products of the qubits they touch.
*/
func fuseU3Runs(c *Circuit, tol float64) *Circuit {
	out := NewCircuit(c.Register)
	pending := make(map[Qubit]Matrix)

	flush := func(q Qubit) {
		if u, ok := pending[q]; ok {
			appendU3(out, q, u, tol)
			delete(pending, q)
		}
	}

	for _, op := range c.Ops {
		if op.Gate.Arity() == 1 {
			q := op.Qubits[0]
			u := op.Gate.Unitary()
			if prev, ok := pending[q]; ok {
				u = u.Mul(prev)
			}
			pending[q] = u
			continue
		}
		for _, q := range op.Qubits {
			flush(q)
		}
		out.Append(op.Gate, op.Qubits...)
	}
	for _, q := range c.Register {
		flush(q)
	}
	return out
}

// appendU3 appends the U3 equivalent (up to global phase) of a 2x2
// unitary, skipping matrices indistinguishable from the identity.
func appendU3(c *Circuit, q Qubit, u Matrix, tol float64) {
	if nearIdentity2x2(u, tol) {
		return
	}
	theta, phi, lambda := zyzAngles(u)
	c.Append(U3{Theta: theta, Phi: phi, Lambda: lambda}, q)
}
