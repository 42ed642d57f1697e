package cpu

import (
	"bytes"
	"hash/fnv"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/FabianRolfMatthiasNoll/gbcore/internal/bus"
)

// runCycles is how many randomized states each opcode is checked against.
const runCycles = 10

type testRig struct {
	rng *rand.Rand
	mem *bus.Bus
	cpu *CPU
	log *bytes.Buffer
}

// newRig builds a CPU over a flat 64KiB bus. The random source is seeded
// from the test name so failures reproduce.
func newRig(t *testing.T) *testRig {
	t.Helper()
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Name()))

	var out bytes.Buffer
	mem := bus.NewFlat()
	return &testRig{
		rng: rand.New(rand.NewPCG(h.Sum64(), 0x5A5A)),
		mem: mem,
		cpu: New(mem, Config{Logger: log.New(&out, "", 0)}),
		log: &out,
	}
}

// randomize resets the CPU and loads random registers and memory.
func (r *testRig) randomize() {
	r.cpu.Reset()
	r.cpu.Registers.Randomize(r.rng)
	r.mem.Randomize(r.rng)
}

// exec runs op and returns register snapshots taken around it.
func (r *testRig) exec(op byte) (before, after Registers) {
	before = r.cpu.Registers.Clone()
	r.cpu.Exec(op)
	after = r.cpu.Registers.Clone()
	return
}

func (r *testRig) execCB(op byte) (before, after Registers) {
	before = r.cpu.Registers.Clone()
	r.cpu.ExecCB(op)
	after = r.cpu.Registers.Clone()
	return
}

// newCPUWithROM maps code at 0x0000 of a ROM-only bus.
func newCPUWithROM(code []byte) *CPU {
	rom := make([]byte, 0x8000)
	copy(rom, code)
	return New(bus.New(rom), Config{Logger: log.New(&bytes.Buffer{}, "", 0)})
}

// assertUnchanged fails if any register other than the named fields moved.
// The cycle counters are never compared.
func assertUnchanged(t *testing.T, before, after Registers, changed ...string) {
	t.Helper()
	ignore := append([]string{"LastClockT", "LastClockM"}, changed...)
	if diff := cmp.Diff(before, after, cmpopts.IgnoreFields(Registers{}, ignore...)); diff != "" {
		t.Errorf("unexpected register change (-before +after):\n%s", diff)
	}
}

func assertClock(t *testing.T, r Registers, cycles uint32) {
	t.Helper()
	assert.Equal(t, cycles, r.LastClockT, "LastClockT")
	assert.Equal(t, cycles/4, r.LastClockM, "LastClockM")
}

// flags is an expected flag state; nil entries must be unchanged.
type flags struct {
	z, n, h, c *bool
}

var (
	yes = ptr(true)
	no  = ptr(false)
)

func ptr(v bool) *bool { return &v }

func assertFlags(t *testing.T, before, after Registers, want flags) {
	t.Helper()
	check := func(name string, want *bool, b, a bool) {
		t.Helper()
		if want == nil {
			assert.Equal(t, b, a, "flag %s should be unchanged", name)
			return
		}
		assert.Equal(t, *want, a, "flag %s", name)
	}
	check("Z", want.z, before.FlagZero(), after.FlagZero())
	check("N", want.n, before.FlagSub(), after.FlagSub())
	check("H", want.h, before.FlagHalfCarry(), after.FlagHalfCarry())
	check("C", want.c, before.FlagCarry(), after.FlagCarry())
	assert.Zero(t, after.F&0x0F, "F low nibble")
}

// regByIndex maps an operand index to its register name. Index 6 ([HL]) has
// no register and is never passed here.
var regByIndex = [8]Reg{RegB, RegC, RegD, RegE, RegH, RegL, 0xFF, RegA}

func field(reg Reg) string { return reg.String() }
