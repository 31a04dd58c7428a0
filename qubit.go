package qgate

import "fmt"

// Qubit addresses a physical qubit on the processor grid.
type Qubit struct {
	Row int
	Col int
}

func (q Qubit) String() string {
	return fmt.Sprintf("q(%d,%d)", q.Row, q.Col)
}

// LineQubits returns n qubits laid out on row 0, columns 0..n-1. Convenient
// for callers that do not care about grid placement.
func LineQubits(n int) []Qubit {
	qubits := make([]Qubit, n)
	for i := range qubits {
		qubits[i] = Qubit{Row: 0, Col: i}
	}
	return qubits
}

// less orders qubits row-major so qubit pairs can be normalized.
func (q Qubit) less(other Qubit) bool {
	if q.Row != other.Row {
		return q.Row < other.Row
	}
	return q.Col < other.Col
}
