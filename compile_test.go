package qgate

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

const fidelityTol = 1e-6

// randomUnitary draws a Haar-ish random unitary by Gram-Schmidt
// orthonormalization of a complex Gaussian matrix.
func randomUnitary(rng *rand.Rand, dim int) Matrix {
	m := NewMatrix(dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			m[i][j] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}
	for c := 0; c < dim; c++ {
		for prev := 0; prev < c; prev++ {
			var dot complex128
			for r := 0; r < dim; r++ {
				dot += cmplx.Conj(m[r][prev]) * m[r][c]
			}
			for r := 0; r < dim; r++ {
				m[r][c] -= dot * m[r][prev]
			}
		}
		var norm float64
		for r := 0; r < dim; r++ {
			norm += real(m[r][c])*real(m[r][c]) + imag(m[r][c])*imag(m[r][c])
		}
		scale := complex(math.Sqrt(norm), 0)
		for r := 0; r < dim; r++ {
			m[r][c] /= scale
		}
	}
	return m
}

func opsFidelity(ops []Operation, register []Qubit, want Matrix) float64 {
	got, err := OperationsUnitary(ops, register)
	So(err, ShouldBeNil)
	return Fidelity(want, got)
}

func TestCompile(t *testing.T) {
	Convey("Given a compiler with default configuration", t, func() {
		compiler := NewCompiler(nil)

		Convey("It should reject more than four target qubits without any work", func() {
			ops, ancillas, err := compiler.Compile(LineQubits(5), Identity(32))

			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
			So(ops, ShouldBeNil)
			So(ancillas, ShouldNotBeNil)
			So(ancillas, ShouldBeEmpty)
			So(compiler.Metrics().Compilations, ShouldEqual, 0)
		})

		Convey("It should require at least one target qubit", func() {
			_, _, err := compiler.Compile(nil, Identity(1))

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrUnsupported), ShouldBeFalse)
		})

		Convey("It should compile the single-qubit identity to no operations", func() {
			ops, ancillas, err := compiler.Compile(LineQubits(1), Identity(2))

			So(err, ShouldBeNil)
			So(ops, ShouldBeEmpty)
			So(ancillas, ShouldBeEmpty)
		})

		Convey("It should compile a Pauli-X into single-qubit operations", func() {
			targets := LineQubits(1)
			ops, ancillas, err := compiler.Compile(targets, pauliX)

			So(err, ShouldBeNil)
			So(ops, ShouldNotBeEmpty)
			So(ancillas, ShouldBeEmpty)
			for _, op := range ops {
				So(op.Gate.Arity(), ShouldEqual, 1)
			}
			So(opsFidelity(ops, targets, pauliX), ShouldAlmostEqual, 1, fidelityTol)
		})

		Convey("It should compile a CNOT onto the native entangler", func() {
			targets := LineQubits(2)
			cnot := CX{}.Unitary()
			ops, ancillas, err := compiler.Compile(targets, cnot)

			So(err, ShouldBeNil)
			So(ancillas, ShouldBeEmpty)

			entanglers := 0
			for _, op := range ops {
				So(nativeGate(op.Gate), ShouldBeTrue)
				if _, ok := op.Gate.(CZ); ok {
					entanglers++
				}
			}
			So(entanglers, ShouldBeGreaterThanOrEqualTo, 1)
			So(opsFidelity(ops, targets, cnot), ShouldAlmostEqual, 1, fidelityTol)
		})

		Convey("It should round-trip random unitaries on one to four qubits", func() {
			rng := rand.New(rand.NewSource(7))
			for n := 1; n <= 4; n++ {
				targets := LineQubits(n)
				matrix := randomUnitary(rng, 1<<n)

				ops, ancillas, err := compiler.Compile(targets, matrix)
				So(err, ShouldBeNil)
				So(ancillas, ShouldBeEmpty)
				for _, op := range ops {
					So(nativeGate(op.Gate), ShouldBeTrue)
				}

				fidelity := opsFidelity(ops, targets, matrix)
				if math.Abs(fidelity-1) > fidelityTol {
					spew.Dump(compiler.Metrics())
				}
				So(fidelity, ShouldAlmostEqual, 1, fidelityTol)

				metrics := compiler.Metrics()
				So(metrics.SelectedOps, ShouldBeLessThanOrEqualTo, metrics.ConvertedOps)
				So(metrics.SelectedOps, ShouldEqual, len(ops))
			}
		})

		Convey("It should report non-unitary input as an ordinary error", func() {
			bad := Matrix{
				{2, 0},
				{0, 1},
			}
			_, _, err := compiler.Compile(LineQubits(1), bad)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrUnsupported), ShouldBeFalse)
		})

		Convey("It should reject a matrix of the wrong dimension", func() {
			_, _, err := compiler.Compile(LineQubits(2), Identity(2))

			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the package-level entry point", t, func() {
		Convey("It should behave like a default compiler", func() {
			targets := LineQubits(1)
			ops, ancillas, err := Compile(targets, pauliX)

			So(err, ShouldBeNil)
			So(ancillas, ShouldBeEmpty)
			So(opsFidelity(ops, targets, pauliX), ShouldAlmostEqual, 1, fidelityTol)
		})
	})
}
