package cpu

import "log"

// Config contains settings that affect how the core reports and times
// instructions.
type Config struct {
	Logger *log.Logger // destination for warnings and traces
	Trace  bool        // log every executed instruction
	// SilenceUnused suppresses the warning logged the first time each
	// undefined opcode executes.
	SilenceUnused bool
	// DelayEI makes EI take effect after the following instruction, as the
	// hardware does. Off by default: EI enables IME immediately, like RETI.
	DelayEI bool
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}
