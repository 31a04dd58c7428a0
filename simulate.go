package qgate

import "fmt"

/*
OperationsUnitary composes an operation list into the full unitary it
implements over the given register. The first register qubit is the most
significant bit of the matrix index. It is the library's verification
helper: the compiled output of a matrix should score a Fidelity of 1
against that matrix, up to numerical tolerance.
*/
func OperationsUnitary(ops []Operation, register []Qubit) (Matrix, error) {
	n := len(register)
	u := Identity(1 << n)
	c := Circuit{Register: register}
	for _, op := range ops {
		if err := applyToMatrix(u, op, &c); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// applyToMatrix left-multiplies op onto the accumulated unitary in place.
func applyToMatrix(u Matrix, op Operation, c *Circuit) error {
	n := len(c.Register)
	dim := 1 << n
	if len(op.Qubits) != op.Gate.Arity() {
		return fmt.Errorf("gate %q acts on %d qubits, got %d", op.Gate.Name(), op.Gate.Arity(), len(op.Qubits))
	}

	switch op.Gate.Arity() {
	case 1:
		idx, err := c.indexOf(op.Qubits[0])
		if err != nil {
			return err
		}
		g := op.Gate.Unitary()
		stride := 1 << (n - 1 - idx)
		for r0 := 0; r0 < dim; r0++ {
			if r0&stride != 0 {
				continue
			}
			r1 := r0 | stride
			for col := 0; col < dim; col++ {
				a, b := u[r0][col], u[r1][col]
				u[r0][col] = g[0][0]*a + g[0][1]*b
				u[r1][col] = g[1][0]*a + g[1][1]*b
			}
		}
	case 2:
		hi, err := c.indexOf(op.Qubits[0])
		if err != nil {
			return err
		}
		lo, err := c.indexOf(op.Qubits[1])
		if err != nil {
			return err
		}
		if hi == lo {
			return fmt.Errorf("gate %q applied twice to %v", op.Gate.Name(), op.Qubits[0])
		}
		g := op.Gate.Unitary()
		s1 := 1 << (n - 1 - hi)
		s2 := 1 << (n - 1 - lo)
		for base := 0; base < dim; base++ {
			if base&(s1|s2) != 0 {
				continue
			}
			rows := [4]int{base, base | s2, base | s1, base | s1 | s2}
			for col := 0; col < dim; col++ {
				var val [4]complex128
				for k := 0; k < 4; k++ {
					val[k] = u[rows[k]][col]
				}
				for k := 0; k < 4; k++ {
					var sum complex128
					for j := 0; j < 4; j++ {
						sum += g[k][j] * val[j]
					}
					u[rows[k]][col] = sum
				}
			}
		}
	default:
		return fmt.Errorf("gate %q has unsupported arity %d", op.Gate.Name(), op.Gate.Arity())
	}
	return nil
}
