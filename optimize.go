package qgate

/*
Optimize shrinks a native-gate circuit without changing its unitary (up to
global phase). Two rewrites run to a fixed point:

  - maximal runs of single-qubit gates on one qubit fuse into at most a
    PhasedX/RZ pair, with identity residue dropped;
  - CZ pairs on the same qubit pair cancel when only diagonal gates (RZ,
    other CZs) sit between them, since diagonal gates commute freely.

Neither rewrite can grow the circuit, so the loop terminates.
*/
func Optimize(c *Circuit, tol float64) *Circuit {
	cur := c
	for {
		next := cancelCZPairs(fuseNativeRuns(cur, tol))
		if next.Len() >= cur.Len() {
			return next
		}
		cur = next
	}
}

// singleRun accumulates a maximal run of single-qubit gates on one qubit:
// the original operations plus their matrix product.
type singleRun struct {
	ops []Operation
	u   Matrix
}

// fuseNativeRuns multiplies out adjacent single-qubit gates per qubit and
// re-emits each product as a native PhasedX/RZ pair. A run is kept as-is
// when the fused form would not be shorter, so the pass never grows the
// circuit.
func fuseNativeRuns(c *Circuit, tol float64) *Circuit {
	out := NewCircuit(c.Register)
	pending := make(map[Qubit]*singleRun)

	flush := func(q Qubit) {
		run, ok := pending[q]
		if !ok {
			return
		}
		delete(pending, q)

		fused := NewCircuit(c.Register)
		if !nearIdentity2x2(run.u, tol) {
			theta, phi, lambda := zyzAngles(run.u)
			appendNative(fused, q, theta, phi, lambda, tol)
		}
		if fused.Len() <= len(run.ops) {
			out.Ops = append(out.Ops, fused.Ops...)
		} else {
			out.Ops = append(out.Ops, run.ops...)
		}
	}

	for _, op := range c.Ops {
		if op.Gate.Arity() == 1 {
			q := op.Qubits[0]
			if run, ok := pending[q]; ok {
				run.ops = append(run.ops, op)
				run.u = op.Gate.Unitary().Mul(run.u)
			} else {
				pending[q] = &singleRun{ops: []Operation{op}, u: op.Gate.Unitary()}
			}
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

type qubitPair struct {
	a, b Qubit
}

func makePair(x, y Qubit) qubitPair {
	if y.less(x) {
		x, y = y, x
	}
	return qubitPair{a: x, b: y}
}

func (p qubitPair) touches(q Qubit) bool {
	return p.a == q || p.b == q
}

// cancelCZPairs removes CZ pairs separated only by diagonal gates.
func cancelCZPairs(c *Circuit) *Circuit {
	removed := make([]bool, len(c.Ops))
	open := make(map[qubitPair]int)

	for i, op := range c.Ops {
		switch op.Gate.(type) {
		case CZ:
			pair := makePair(op.Qubits[0], op.Qubits[1])
			if j, ok := open[pair]; ok {
				removed[i] = true
				removed[j] = true
				delete(open, pair)
			} else {
				open[pair] = i
			}
		case RZ:
			// Diagonal, commutes with CZ; cancellation stays legal.
		default:
			for _, q := range op.Qubits {
				for pair := range open {
					if pair.touches(q) {
						delete(open, pair)
					}
				}
			}
		}
	}

	out := NewCircuit(c.Register)
	for i, op := range c.Ops {
		if !removed[i] {
			out.Append(op.Gate, op.Qubits...)
		}
	}
	return out
}
