package qgate

import (
	"fmt"
	"math"
)

/*
Gate is an elementary quantum gate. Unitary returns the gate's matrix in the
computational basis; for two-qubit gates the first acted-on qubit is the
high bit of the matrix index.
*/
type Gate interface {
	Name() string
	Arity() int
	Unitary() Matrix
}

// U3 is the generic single-qubit rotation of the universal basis.
type U3 struct {
	Theta  float64
	Phi    float64
	Lambda float64
}

func (g U3) Name() string { return "u3" }
func (g U3) Arity() int   { return 1 }

func (g U3) Unitary() Matrix {
	return u3Mat(g.Theta, g.Phi, g.Lambda)
}

func (g U3) String() string {
	return fmt.Sprintf("u3(%g,%g,%g)", g.Theta, g.Phi, g.Lambda)
}

// CX is the controlled-NOT of the universal basis, control first.
type CX struct{}

func (CX) Name() string   { return "cx" }
func (CX) Arity() int     { return 2 }
func (CX) String() string { return "cx" }

func (CX) Unitary() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}

// CZ is the processor's native entangling gate.
type CZ struct{}

func (CZ) Name() string   { return "cz" }
func (CZ) Arity() int     { return 2 }
func (CZ) String() string { return "cz" }

func (CZ) Unitary() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}
}

// RZ is the native Z rotation.
type RZ struct {
	Theta float64
}

func (g RZ) Name() string { return "rz" }
func (g RZ) Arity() int   { return 1 }

func (g RZ) Unitary() Matrix {
	return rzMat(g.Theta)
}

func (g RZ) String() string {
	return fmt.Sprintf("rz(%g)", g.Theta)
}

/*
PhasedX is the native microwave gate: a rotation by Theta about an axis in
the XY equatorial plane, where Axis is the angle of the rotation axis from
X. PhasedX(theta, 0) is an X rotation, PhasedX(theta, pi/2) a Y rotation.
*/
type PhasedX struct {
	Theta float64
	Axis  float64
}

func (g PhasedX) Name() string { return "phx" }
func (g PhasedX) Arity() int   { return 1 }

func (g PhasedX) Unitary() Matrix {
	c := complex(math.Cos(g.Theta/2), 0)
	s := complex(0, -math.Sin(g.Theta/2))
	return Matrix{
		{c, s * cis(-g.Axis)},
		{s * cis(g.Axis), c},
	}
}

func (g PhasedX) String() string {
	return fmt.Sprintf("phx(%g,%g)", g.Theta, g.Axis)
}

// nativeGate reports whether g belongs to the hardware gate set.
func nativeGate(g Gate) bool {
	switch g.(type) {
	case CZ, RZ, PhasedX:
		return true
	}
	return false
}
