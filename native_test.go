package qgate

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConvertToNative(t *testing.T) {
	Convey("Given the native gate-set conversion pass", t, func() {
		tol := NewConfig().Tolerance
		register := LineQubits(2)

		Convey("It should emit only native gates", func() {
			c := NewCircuit(register)
			c.Append(U3{Theta: 1.1, Phi: 0.2, Lambda: -0.4}, register[0])
			c.Append(CX{}, register[0], register[1])
			c.Append(U3{Theta: math.Pi, Phi: 0, Lambda: math.Pi}, register[1])

			converted, err := ConvertToNative(c, tol)
			So(err, ShouldBeNil)
			So(converted.Len(), ShouldBeGreaterThan, 0)
			for _, op := range converted.Ops {
				So(nativeGate(op.Gate), ShouldBeTrue)
			}
		})

		Convey("It should preserve the unitary up to global phase", func() {
			rng := rand.New(rand.NewSource(23))
			c := NewCircuit(register)
			for i := 0; i < 6; i++ {
				q := register[i%2]
				c.Append(U3{
					Theta:  rng.Float64() * math.Pi,
					Phi:    rng.Float64()*2*math.Pi - math.Pi,
					Lambda: rng.Float64()*2*math.Pi - math.Pi,
				}, q)
				if i%3 == 2 {
					c.Append(CX{}, register[0], register[1])
				}
			}

			want, err := OperationsUnitary(c.Ops, register)
			So(err, ShouldBeNil)

			converted, err := ConvertToNative(c, tol)
			So(err, ShouldBeNil)
			got, err := OperationsUnitary(converted.Ops, register)
			So(err, ShouldBeNil)
			So(Fidelity(want, got), ShouldAlmostEqual, 1, fidelityTol)
		})

		Convey("It should be idempotent on native circuits", func() {
			c := NewCircuit(register)
			c.Append(PhasedX{Theta: 0.7, Axis: 0.1}, register[0])
			c.Append(CZ{}, register[0], register[1])
			c.Append(RZ{Theta: -0.9}, register[1])

			converted, err := ConvertToNative(c, tol)
			So(err, ShouldBeNil)
			So(converted.Ops, ShouldResemble, c.Ops)
		})

		Convey("It should drop identity rotations", func() {
			c := NewCircuit(register)
			c.Append(U3{Theta: 0, Phi: 0, Lambda: 0}, register[0])

			converted, err := ConvertToNative(c, tol)
			So(err, ShouldBeNil)
			So(converted.Ops, ShouldBeEmpty)
		})
	})
}

func TestGateConventions(t *testing.T) {
	Convey("Given the gate matrix conventions", t, func() {
		Convey("A CX composed over a two-qubit register matches its own matrix", func() {
			register := LineQubits(2)
			ops := []Operation{{Gate: CX{}, Qubits: []Qubit{register[0], register[1]}}}

			u, err := OperationsUnitary(ops, register)
			So(err, ShouldBeNil)
			So(Fidelity(u, CX{}.Unitary()), ShouldAlmostEqual, 1, fidelityTol)
		})

		Convey("A reversed CX differs from the forward one", func() {
			register := LineQubits(2)
			ops := []Operation{{Gate: CX{}, Qubits: []Qubit{register[1], register[0]}}}

			u, err := OperationsUnitary(ops, register)
			So(err, ShouldBeNil)
			So(Fidelity(u, CX{}.Unitary()), ShouldNotAlmostEqual, 1, fidelityTol)
		})

		Convey("PhasedX about the Y axis is a real rotation", func() {
			u := PhasedX{Theta: math.Pi / 2, Axis: math.Pi / 2}.Unitary()
			So(Fidelity(u, ryMat(math.Pi/2)), ShouldAlmostEqual, 1, fidelityTol)
		})
	})
}
