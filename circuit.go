package qgate

import "fmt"

/*
Circuit is an ordered list of operations over a fixed qubit register. The
register order is significant: the first qubit is the most significant bit
of any matrix interpreted against the circuit.
*/
type Circuit struct {
	Register []Qubit
	Ops      []Operation
}

func NewCircuit(register []Qubit) *Circuit {
	return &Circuit{
		Register: register,
		Ops:      make([]Operation, 0),
	}
}

// Append adds a gate acting on the given qubits.
func (c *Circuit) Append(g Gate, qubits ...Qubit) {
	c.Ops = append(c.Ops, Operation{Gate: g, Qubits: qubits})
}

// Len is the operation count, the cost metric used throughout.
func (c *Circuit) Len() int {
	return len(c.Ops)
}

// indexOf resolves a qubit to its register position.
func (c *Circuit) indexOf(q Qubit) (int, error) {
	for i, r := range c.Register {
		if r == q {
			return i, nil
		}
	}
	return 0, fmt.Errorf("qubit %v is not in the circuit register", q)
}
