package emu

import (
	"log"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/cpu"
)

// Config contains settings that affect emulation behavior.
type Config struct {
	Logger        *log.Logger // defaults to log.Default()
	Trace         bool        // log CPU instructions
	DelayEI       bool        // EI takes effect one instruction late
	SilenceUnused bool        // no warnings for undefined opcodes
	// PostBoot starts at 0x0100 with the registers the boot ROM leaves
	// behind instead of the power-on state at 0x0000.
	PostBoot bool
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Logger == nil {
		c.Logger = log.Default()
	}
}

func (c Config) cpuConfig() cpu.Config {
	return cpu.Config{
		Logger:        c.Logger,
		Trace:         c.Trace,
		SilenceUnused: c.SilenceUnused,
		DelayEI:       c.DelayEI,
	}
}
