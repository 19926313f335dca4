package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// stubBus is a flat 64 KiB memory with interrupt requests wired to IF,
// enough to execute programs without the full memory map.
type stubBus struct {
	mem [0x10000]byte
}

func (b *stubBus) Read(address uint16) byte         { return b.mem[address] }
func (b *stubBus) Write(address uint16, value byte) { b.mem[address] = value }

func (b *stubBus) RequestInterrupt(interrupt addr.Interrupt) {
	b.mem[addr.IF] = bit.Set(uint8(interrupt), b.mem[addr.IF])
}

// newTestCPU loads program at 0x0100 and points PC at it.
func newTestCPU(program ...byte) (*CPU, *stubBus) {
	bus := &stubBus{}
	copy(bus.mem[0x0100:], program)
	return New(bus), bus
}

func mustStep(t *testing.T, c *CPU) int {
	t.Helper()
	cycles, err := c.Step()
	require.NoError(t, err)
	return cycles
}

func TestNewStartsInPostBootState(t *testing.T) {
	c, _ := newTestCPU()

	assert.Equal(t, uint16(0x01B0), c.getAF())
	assert.Equal(t, uint16(0x0013), c.getBC())
	assert.Equal(t, uint16(0x00D8), c.getDE())
	assert.Equal(t, uint16(0x014D), c.getHL())
	assert.Equal(t, uint16(0xFFFE), c.SP())
	assert.Equal(t, uint16(0x0100), c.PC())
	assert.False(t, c.IME())
}

func TestFlagRegisterLowNibbleAlwaysZero(t *testing.T) {
	c, _ := newTestCPU(0xF1) // POP AF
	c.sp = 0xC000
	c.bus.Write(0xC000, 0xFF)
	c.bus.Write(0xC001, 0x12)

	mustStep(t, c)

	assert.Equal(t, uint8(0x12), c.A())
	assert.Equal(t, uint8(0xF0), c.F(), "low nibble of F must read back as zero")
}

func TestAddFlags(t *testing.T) {
	cases := []struct {
		name       string
		a, operand uint8
		result     uint8
		z, h, cy   bool
	}{
		{"zero plus zero", 0x00, 0x00, 0x00, true, false, false},
		{"no carries", 0x01, 0x01, 0x02, false, false, false},
		{"half carry only", 0x0F, 0x01, 0x10, false, true, false},
		{"carry without half", 0xF0, 0x10, 0x00, true, false, true},
		{"both carries", 0xFF, 0x01, 0x00, true, true, true},
		{"wrap keeps remainder", 0xFF, 0x02, 0x01, false, true, true},
		{"high boundary", 0x80, 0x80, 0x00, true, false, true},
		{"just below half", 0x7F, 0x01, 0x80, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU(0x80) // ADD A,B
			c.a = tc.a
			c.b = tc.operand

			mustStep(t, c)

			assert.Equal(t, tc.result, c.A())
			assert.Equal(t, tc.z, c.isSetFlag(zeroFlag), "Z")
			assert.False(t, c.isSetFlag(subFlag), "N")
			assert.Equal(t, tc.h, c.isSetFlag(halfCarryFlag), "H")
			assert.Equal(t, tc.cy, c.isSetFlag(carryFlag), "C")
		})
	}
}

func TestAdcIncludesCarryInBothFlags(t *testing.T) {
	c, _ := newTestCPU(0x88) // ADC A,B
	c.a = 0x0F
	c.b = 0x00
	c.setFlag(carryFlag)

	mustStep(t, c)

	assert.Equal(t, uint8(0x10), c.A())
	assert.True(t, c.isSetFlag(halfCarryFlag), "carry-in must participate in the half-carry")
	assert.False(t, c.isSetFlag(carryFlag))
}

func TestSubFlags(t *testing.T) {
	cases := []struct {
		name       string
		a, operand uint8
		result     uint8
		z, h, cy   bool
	}{
		{"equal operands", 0x42, 0x42, 0x00, true, false, false},
		{"simple", 0x10, 0x01, 0x0F, false, true, false},
		{"borrow", 0x00, 0x01, 0xFF, false, true, true},
		{"full borrow", 0x00, 0xFF, 0x01, false, true, true},
		{"no borrow at all", 0xFF, 0x7F, 0x80, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU(0x90) // SUB B
			c.a = tc.a
			c.b = tc.operand

			mustStep(t, c)

			assert.Equal(t, tc.result, c.A())
			assert.Equal(t, tc.z, c.isSetFlag(zeroFlag), "Z")
			assert.True(t, c.isSetFlag(subFlag), "N")
			assert.Equal(t, tc.h, c.isSetFlag(halfCarryFlag), "H")
			assert.Equal(t, tc.cy, c.isSetFlag(carryFlag), "C")
		})
	}
}

func TestCompareLeavesAccumulatorUntouched(t *testing.T) {
	c, _ := newTestCPU(0xB8) // CP B
	c.a = 0x3C
	c.b = 0x40

	mustStep(t, c)

	assert.Equal(t, uint8(0x3C), c.A())
	assert.True(t, c.isSetFlag(carryFlag), "A < operand sets carry")
}

func TestIncDecPreserveCarry(t *testing.T) {
	t.Run("INC wraps without touching carry", func(t *testing.T) {
		c, _ := newTestCPU(0x3C) // INC A
		c.a = 0xFF
		c.setFlag(carryFlag)

		mustStep(t, c)

		assert.Equal(t, uint8(0x00), c.A())
		assert.True(t, c.isSetFlag(zeroFlag))
		assert.True(t, c.isSetFlag(halfCarryFlag))
		assert.True(t, c.isSetFlag(carryFlag), "carry is not affected by INC")
	})

	t.Run("DEC borrows without touching carry", func(t *testing.T) {
		c, _ := newTestCPU(0x3D) // DEC A
		c.a = 0x00

		mustStep(t, c)

		assert.Equal(t, uint8(0xFF), c.A())
		assert.True(t, c.isSetFlag(subFlag))
		assert.True(t, c.isSetFlag(halfCarryFlag))
		assert.False(t, c.isSetFlag(carryFlag))
	})
}

func TestLogicalOps(t *testing.T) {
	t.Run("AND sets half carry", func(t *testing.T) {
		c, _ := newTestCPU(0xA0) // AND B
		c.a = 0xF0
		c.b = 0x0F

		mustStep(t, c)

		assert.Equal(t, uint8(0x00), c.A())
		assert.True(t, c.isSetFlag(zeroFlag))
		assert.True(t, c.isSetFlag(halfCarryFlag))
		assert.False(t, c.isSetFlag(carryFlag))
	})

	t.Run("XOR A clears everything but Z", func(t *testing.T) {
		c, _ := newTestCPU(0xAF) // XOR A
		c.a = 0x5A
		c.f = 0xF0

		mustStep(t, c)

		assert.Equal(t, uint8(0x00), c.A())
		assert.Equal(t, uint8(0x80), c.F())
	})

	t.Run("OR clears N H C", func(t *testing.T) {
		c, _ := newTestCPU(0xB0) // OR B
		c.a = 0x40
		c.b = 0x02
		c.f = 0x70

		mustStep(t, c)

		assert.Equal(t, uint8(0x42), c.A())
		assert.Equal(t, uint8(0x00), c.F())
	})
}

func TestDaaAfterBCDArithmetic(t *testing.T) {
	toBCD := func(v int) uint8 { return uint8(v/10<<4 | v%10) }

	t.Run("addition", func(t *testing.T) {
		for x := 0; x < 100; x++ {
			for y := 0; y < 100; y++ {
				c, _ := newTestCPU(0x80, 0x27) // ADD A,B ; DAA
				c.a = toBCD(x)
				c.b = toBCD(y)

				mustStep(t, c)
				mustStep(t, c)

				sum := x + y
				require.Equal(t, toBCD(sum%100), c.A(), "%d + %d", x, y)
				require.Equal(t, sum > 99, c.isSetFlag(carryFlag), "carry for %d + %d", x, y)
				require.Equal(t, sum%100 == 0, c.isSetFlag(zeroFlag), "zero for %d + %d", x, y)
				require.False(t, c.isSetFlag(halfCarryFlag))
			}
		}
	})

	t.Run("subtraction", func(t *testing.T) {
		for x := 0; x < 100; x++ {
			for y := 0; y <= x; y++ {
				c, _ := newTestCPU(0x90, 0x27) // SUB B ; DAA
				c.a = toBCD(x)
				c.b = toBCD(y)

				mustStep(t, c)
				mustStep(t, c)

				require.Equal(t, toBCD(x-y), c.A(), "%d - %d", x, y)
				require.False(t, c.isSetFlag(carryFlag))
			}
		}
	})
}

func TestAddHLUsesHighByteCarries(t *testing.T) {
	cases := []struct {
		name     string
		hl, rr   uint16
		result   uint16
		h, cy    bool
	}{
		{"bit 11 carry", 0x0FFF, 0x0001, 0x1000, true, false},
		{"bit 15 carry", 0x8000, 0x8000, 0x0000, false, true},
		{"both", 0xFFFF, 0x0001, 0x0000, true, true},
		{"neither", 0x1234, 0x0111, 0x1345, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU(0x09) // ADD HL,BC
			c.setHL(tc.hl)
			c.setBC(tc.rr)
			c.setFlag(zeroFlag)

			mustStep(t, c)

			assert.Equal(t, tc.result, c.getHL())
			assert.True(t, c.isSetFlag(zeroFlag), "Z is not affected")
			assert.False(t, c.isSetFlag(subFlag))
			assert.Equal(t, tc.h, c.isSetFlag(halfCarryFlag), "H")
			assert.Equal(t, tc.cy, c.isSetFlag(carryFlag), "C")
		})
	}
}

func TestAddSPSignedOffsetFlags(t *testing.T) {
	cases := []struct {
		name   string
		sp     uint16
		offset byte
		result uint16
		h, cy  bool
	}{
		{"positive no carries", 0xFFF0, 0x05, 0xFFF5, false, false},
		{"positive low-byte carries", 0x00FF, 0x01, 0x0100, true, true},
		{"negative offset", 0x0100, 0xFF, 0x00FF, false, false}, // -1
		{"negative with low carries", 0x000F, 0xFF, 0x000E, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCPU(0xE8, tc.offset) // ADD SP,r8
			c.sp = tc.sp

			cycles := mustStep(t, c)

			assert.Equal(t, 16, cycles)
			assert.Equal(t, tc.result, c.SP())
			assert.False(t, c.isSetFlag(zeroFlag), "Z is always reset")
			assert.False(t, c.isSetFlag(subFlag))
			assert.Equal(t, tc.h, c.isSetFlag(halfCarryFlag), "H")
			assert.Equal(t, tc.cy, c.isSetFlag(carryFlag), "C")
		})
	}
}

func TestLdHLSPOffset(t *testing.T) {
	c, _ := newTestCPU(0xF8, 0xFE) // LD HL,SP-2
	c.sp = 0xFFFE

	cycles := mustStep(t, c)

	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint16(0xFFFC), c.getHL())
	assert.Equal(t, uint16(0xFFFE), c.SP(), "SP itself is unchanged")
}

func TestRotateAccumulatorClearsZero(t *testing.T) {
	t.Run("RLCA", func(t *testing.T) {
		c, _ := newTestCPU(0x07)
		c.a = 0x80
		c.setFlag(zeroFlag)

		mustStep(t, c)

		assert.Equal(t, uint8(0x01), c.A())
		assert.True(t, c.isSetFlag(carryFlag))
		assert.False(t, c.isSetFlag(zeroFlag), "accumulator rotates always reset Z")
	})

	t.Run("RRA shifts carry in", func(t *testing.T) {
		c, _ := newTestCPU(0x1F)
		c.a = 0x00
		c.setFlag(carryFlag)

		mustStep(t, c)

		assert.Equal(t, uint8(0x80), c.A())
		assert.False(t, c.isSetFlag(carryFlag))
	})
}

func TestCarryFlagOps(t *testing.T) {
	t.Run("SCF", func(t *testing.T) {
		c, _ := newTestCPU(0x37)
		c.f = 0xE0 // Z N H set

		mustStep(t, c)

		assert.Equal(t, uint8(0x90), c.F(), "sets C, clears N and H, keeps Z")
	})

	t.Run("CCF toggles", func(t *testing.T) {
		c, _ := newTestCPU(0x3F, 0x3F)

		c.setFlag(carryFlag)
		mustStep(t, c)
		assert.False(t, c.isSetFlag(carryFlag))

		mustStep(t, c)
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("CPL", func(t *testing.T) {
		c, _ := newTestCPU(0x2F)
		c.a = 0x35

		mustStep(t, c)

		assert.Equal(t, uint8(0xCA), c.A())
		assert.True(t, c.isSetFlag(subFlag))
		assert.True(t, c.isSetFlag(halfCarryFlag))
	})
}

func TestStackOps(t *testing.T) {
	t.Run("PUSH then POP round-trips", func(t *testing.T) {
		c, _ := newTestCPU(0xD5, 0xE1) // PUSH DE ; POP HL
		c.sp = 0xFFFE
		c.setDE(0xBEEF)

		mustStep(t, c)
		assert.Equal(t, uint16(0xFFFC), c.SP())

		mustStep(t, c)
		assert.Equal(t, uint16(0xBEEF), c.getHL())
		assert.Equal(t, uint16(0xFFFE), c.SP())
	})

	t.Run("LD (a16),SP stores little endian", func(t *testing.T) {
		c, bus := newTestCPU(0x08, 0x00, 0xC0) // LD (0xC000),SP
		c.sp = 0xABCD

		cycles := mustStep(t, c)

		assert.Equal(t, 20, cycles)
		assert.Equal(t, uint8(0xCD), bus.mem[0xC000])
		assert.Equal(t, uint8(0xAB), bus.mem[0xC001])
	})
}

func TestControlFlow(t *testing.T) {
	t.Run("JR taken costs more than not taken", func(t *testing.T) {
		c, _ := newTestCPU(0x20, 0x05) // JR NZ,+5
		c.resetFlag(zeroFlag)

		cycles := mustStep(t, c)

		assert.Equal(t, 12, cycles)
		assert.Equal(t, uint16(0x0107), c.PC())
	})

	t.Run("JR not taken skips operand", func(t *testing.T) {
		c, _ := newTestCPU(0x20, 0x05)
		c.setFlag(zeroFlag)

		cycles := mustStep(t, c)

		assert.Equal(t, 8, cycles)
		assert.Equal(t, uint16(0x0102), c.PC())
	})

	t.Run("JR backwards", func(t *testing.T) {
		c, _ := newTestCPU(0x18, 0xFE) // JR -2: loop to itself

		mustStep(t, c)

		assert.Equal(t, uint16(0x0100), c.PC())
	})

	t.Run("CALL pushes the return address", func(t *testing.T) {
		c, bus := newTestCPU(0xCD, 0x00, 0x20) // CALL 0x2000
		c.sp = 0xFFFE

		cycles := mustStep(t, c)

		assert.Equal(t, 24, cycles)
		assert.Equal(t, uint16(0x2000), c.PC())
		assert.Equal(t, uint8(0x03), bus.mem[0xFFFC])
		assert.Equal(t, uint8(0x01), bus.mem[0xFFFD])
	})

	t.Run("RET pops into PC", func(t *testing.T) {
		c, bus := newTestCPU(0xC9)
		c.sp = 0xFFFC
		bus.mem[0xFFFC] = 0x34
		bus.mem[0xFFFD] = 0x12

		cycles := mustStep(t, c)

		assert.Equal(t, 16, cycles)
		assert.Equal(t, uint16(0x1234), c.PC())
		assert.Equal(t, uint16(0xFFFE), c.SP())
	})

	t.Run("conditional RET not taken", func(t *testing.T) {
		c, _ := newTestCPU(0xC0) // RET NZ
		c.setFlag(zeroFlag)
		c.sp = 0xFFFC

		cycles := mustStep(t, c)

		assert.Equal(t, 8, cycles)
		assert.Equal(t, uint16(0x0101), c.PC())
		assert.Equal(t, uint16(0xFFFC), c.SP())
	})

	t.Run("RST vectors", func(t *testing.T) {
		c, _ := newTestCPU(0xEF) // RST 28H
		c.sp = 0xFFFE

		cycles := mustStep(t, c)

		assert.Equal(t, 16, cycles)
		assert.Equal(t, uint16(0x0028), c.PC())
	})

	t.Run("JP (HL) is a plain register load", func(t *testing.T) {
		c, _ := newTestCPU(0xE9)
		c.setHL(0x4321)

		cycles := mustStep(t, c)

		assert.Equal(t, 4, cycles)
		assert.Equal(t, uint16(0x4321), c.PC())
	})
}

func TestMemoryAddressing(t *testing.T) {
	t.Run("LD (HL+),A post-increments", func(t *testing.T) {
		c, bus := newTestCPU(0x22)
		c.a = 0x99
		c.setHL(0xC000)

		mustStep(t, c)

		assert.Equal(t, uint8(0x99), bus.mem[0xC000])
		assert.Equal(t, uint16(0xC001), c.getHL())
	})

	t.Run("LD A,(HL-) post-decrements", func(t *testing.T) {
		c, bus := newTestCPU(0x3A)
		c.setHL(0xC005)
		bus.mem[0xC005] = 0x77

		mustStep(t, c)

		assert.Equal(t, uint8(0x77), c.A())
		assert.Equal(t, uint16(0xC004), c.getHL())
	})

	t.Run("LDH uses the high page", func(t *testing.T) {
		c, bus := newTestCPU(0xE0, 0x80) // LDH (0x80),A
		c.a = 0x5A

		cycles := mustStep(t, c)

		assert.Equal(t, 12, cycles)
		assert.Equal(t, uint8(0x5A), bus.mem[0xFF80])
	})

	t.Run("LD (C),A", func(t *testing.T) {
		c, bus := newTestCPU(0xE2)
		c.a = 0x42
		c.c = 0x81

		mustStep(t, c)

		assert.Equal(t, uint8(0x42), bus.mem[0xFF81])
	})
}

func TestIllegalOpcodeIsFatal(t *testing.T) {
	c, _ := newTestCPU(0xD3)

	_, err := c.Step()

	require.ErrorIs(t, err, ErrIllegalOpcode)
	assert.Contains(t, err.Error(), "0xD3")
	assert.Contains(t, err.Error(), "0x0100")
}

func TestDisassemble(t *testing.T) {
	c, _ := newTestCPU(0xC3, 0x50, 0x01) // JP a16

	text, length := c.Disassemble(0x0100)

	assert.Equal(t, 3, length)
	assert.Contains(t, text, "JP a16")
	assert.Contains(t, text, "0x0100")
}
