package qgate

import (
	"fmt"
	"math"
)

/*
ConvertToNative rewrites a circuit into the processor's native gate set
{CZ, PhasedX, RZ}. The rewrites are exact up to global phase:

	U3(t, p, l)  ->  PhasedX(t, pi/2 - l) then RZ(p + l)
	CX(c, t)     ->  H(t) CZ(c, t) H(t)   with H expressed natively

Already-native gates pass through, so the conversion is idempotent.
*/
func ConvertToNative(c *Circuit, tol float64) (*Circuit, error) {
	out := NewCircuit(c.Register)
	for _, op := range c.Ops {
		switch g := op.Gate.(type) {
		case U3:
			appendNative(out, op.Qubits[0], g.Theta, g.Phi, g.Lambda, tol)
		case CX:
			ctrl, tgt := op.Qubits[0], op.Qubits[1]
			appendNativeH(out, tgt, tol)
			out.Append(CZ{}, ctrl, tgt)
			appendNativeH(out, tgt, tol)
		case CZ, RZ, PhasedX:
			out.Append(op.Gate, op.Qubits...)
		default:
			return nil, fmt.Errorf("gate %q cannot be converted to the native set", op.Gate.Name())
		}
	}
	return out, nil
}

// appendNative emits the native pair for a U3, dropping whichever half is
// an identity rotation.
func appendNative(c *Circuit, q Qubit, theta, phi, lambda, tol float64) {
	if rotationSignificant(theta, tol) {
		c.Append(PhasedX{Theta: theta, Axis: math.Pi/2 - lambda}, q)
	}
	if z := phi + lambda; rotationSignificant(z, tol) {
		c.Append(RZ{Theta: z}, q)
	}
}

// appendNativeH is a Hadamard, which is U3(pi/2, 0, pi).
func appendNativeH(c *Circuit, q Qubit, tol float64) {
	appendNative(c, q, math.Pi/2, 0, math.Pi, tol)
}
