package qgate

// Config carries the tunables of a Compiler.
type Config struct {
	// Tolerance is the angle threshold below which a rotation is treated
	// as the identity and dropped from the output.
	Tolerance float64
}

func NewConfig() *Config {
	return &Config{
		Tolerance: 1e-9,
	}
}
