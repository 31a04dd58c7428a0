package qgate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex = regexp.MustCompile(`^qreg\s+q\[(\d+)\];$`)
	u3Regex   = regexp.MustCompile(`^u3\(([^,]+),([^,]+),([^)]+)\)\s+q\[(\d+)\];$`)
	cxRegex   = regexp.MustCompile(`^cx\s+q\[(\d+)\],\s*q\[(\d+)\];$`)
)

/*
ToQASM serializes a {CX, U3} circuit as OpenQASM 2.0 text. The textual form
is the interchange bridge between the synthesis stage and the hardware
conversion stage; only universal-basis gates are representable.
*/
func (c *Circuit) ToQASM() (string, error) {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", len(c.Register))

	for _, op := range c.Ops {
		switch g := op.Gate.(type) {
		case U3:
			idx, err := c.indexOf(op.Qubits[0])
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "u3(%s,%s,%s) q[%d];\n",
				formatAngle(g.Theta), formatAngle(g.Phi), formatAngle(g.Lambda), idx)
		case CX:
			ctrl, err := c.indexOf(op.Qubits[0])
			if err != nil {
				return "", err
			}
			tgt, err := c.indexOf(op.Qubits[1])
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "cx q[%d],q[%d];\n", ctrl, tgt)
		default:
			return "", fmt.Errorf("gate %q has no QASM form", op.Gate.Name())
		}
	}
	return b.String(), nil
}

// formatAngle keeps enough digits for an exact float64 round trip.
func formatAngle(a float64) string {
	return strconv.FormatFloat(a, 'g', 17, 64)
}

/*
ParseQASM reads the OpenQASM 2.0 subset emitted by ToQASM back into a
circuit over the given register. Register indices in the text map onto the
register slice by position.
*/
func ParseQASM(src string, register []Qubit) (*Circuit, error) {
	c := NewCircuit(register)
	for lineno, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") || strings.HasPrefix(line, "//") {
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			size, err := strconv.Atoi(m[1])
			if err != nil || size != len(register) {
				return nil, fmt.Errorf("line %d: qreg size %s does not match register of %d", lineno+1, m[1], len(register))
			}
			continue
		}

		if m := u3Regex.FindStringSubmatch(line); m != nil {
			var angles [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(strings.TrimSpace(m[i+1]), 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad angle %q: %w", lineno+1, m[i+1], err)
				}
				angles[i] = v
			}
			q, err := parseQubitIndex(m[4], register)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno+1, err)
			}
			c.Append(U3{Theta: angles[0], Phi: angles[1], Lambda: angles[2]}, q)
			continue
		}

		if m := cxRegex.FindStringSubmatch(line); m != nil {
			ctrl, err := parseQubitIndex(m[1], register)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno+1, err)
			}
			tgt, err := parseQubitIndex(m[2], register)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno+1, err)
			}
			c.Append(CX{}, ctrl, tgt)
			continue
		}

		return nil, fmt.Errorf("line %d: unsupported QASM statement %q", lineno+1, line)
	}
	return c, nil
}

func parseQubitIndex(s string, register []Qubit) (Qubit, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return Qubit{}, fmt.Errorf("bad qubit index %q: %w", s, err)
	}
	if idx < 0 || idx >= len(register) {
		return Qubit{}, fmt.Errorf("qubit index %d out of range for register of %d", idx, len(register))
	}
	return register[idx], nil
}
