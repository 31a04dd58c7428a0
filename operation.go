package qgate

import (
	"fmt"
	"strings"
)

// Operation is a gate applied to concrete qubits, in gate order (control
// first for two-qubit gates).
type Operation struct {
	Gate   Gate
	Qubits []Qubit
}

func (op Operation) String() string {
	names := make([]string, len(op.Qubits))
	for i, q := range op.Qubits {
		names[i] = q.String()
	}
	return fmt.Sprintf("%v %s", op.Gate, strings.Join(names, ","))
}
