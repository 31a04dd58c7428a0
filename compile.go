package qgate

import (
	"errors"
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

// ErrUnsupported reports a unitary this compiler deliberately refuses:
// callers should treat the matrix as unsupported rather than failed.
var ErrUnsupported = errors.New("unitary not supported: more than four target qubits")

// maxTargetQubits is a hard cutoff, not a heuristic.
const maxTargetQubits = 4

/*
Compiler turns small unitary matrices into operation sequences the target
processor can execute natively. Every compilation is independent; the
compiler only carries its configuration and aggregate metrics.
*/
type Compiler struct {
	config  *Config
	metrics *Metrics
}

func NewCompiler(config *Config) *Compiler {
	if config == nil {
		config = NewConfig()
	}
	return &Compiler{
		config:  config,
		metrics: newMetrics(),
	}
}

// Metrics returns a snapshot of the per-stage counters.
func (cl *Compiler) Metrics() Metrics {
	return cl.metrics.Snapshot()
}

/*
Compile converts a unitary matrix into native gate operations on the
target qubits. The register order of targets defines the bit order of the
matrix index, first qubit most significant. The returned operations,
composed in order, equal the matrix up to global phase within numerical
tolerance; the second return value lists allocated ancilla qubits, today
always empty.

Matrices on more than four qubits return ErrUnsupported immediately. The
pipeline synthesizes over {CX, U3}, round-trips through OpenQASM 2.0,
converts to the native gate set, optimizes, and returns whichever of the
converted or optimized circuits has fewer operations — ties favor the
optimized one, so the optimizer is only discarded when strictly worse.
*/
func (cl *Compiler) Compile(targets []Qubit, matrix Matrix) ([]Operation, []Qubit, error) {
	ancillas := []Qubit{}
	if len(targets) == 0 {
		return nil, ancillas, fmt.Errorf("at least one target qubit is required")
	}
	if len(targets) > maxTargetQubits {
		return nil, ancillas, ErrUnsupported
	}
	start := time.Now()

	synthesized, err := synthesize(matrix, targets, cl.config.Tolerance)
	if err != nil {
		return nil, ancillas, err
	}

	qasm, err := synthesized.ToQASM()
	if err != nil {
		return nil, ancillas, err
	}
	bridged, err := ParseQASM(qasm, targets)
	if err != nil {
		return nil, ancillas, err
	}

	converted, err := ConvertToNative(bridged, cl.config.Tolerance)
	if err != nil {
		return nil, ancillas, err
	}
	optimized := Optimize(converted, cl.config.Tolerance)

	// Keep the optimized circuit unless optimization strictly worsened
	// the operation count.
	selected := optimized
	if optimized.Len() > converted.Len() {
		selected = converted
	}

	cl.metrics.recordCompile(start, synthesized.Len(), converted.Len(), optimized.Len(), selected.Len())
	errnie.Info(
		"compiled %d-qubit unitary - synthesized %d, converted %d, optimized %d, selected %d ops",
		len(targets),
		synthesized.Len(),
		converted.Len(),
		optimized.Len(),
		selected.Len(),
	)

	return selected.Ops, ancillas, nil
}

// Compile is the package-level entry point with default configuration.
func Compile(targets []Qubit, matrix Matrix) ([]Operation, []Qubit, error) {
	return NewCompiler(nil).Compile(targets, matrix)
}
