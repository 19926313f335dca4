package cpu

import (
	"errors"
	"fmt"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	RequestInterrupt(interrupt addr.Interrupt)
}

// Flag is one of the 4 flags in the flag register (low byte of AF).
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

const (
	baseInterruptVector uint16 = 0x40
	interruptCycles            = 20
)

// ErrIllegalOpcode reports a fetch of an opcode with no defined semantics.
// Execution cannot meaningfully continue past one.
var ErrIllegalOpcode = errors.New("illegal opcode")

// CPU is the SM83 execution engine: an 8/16-bit register file plus the
// interrupt master enable state, driven one instruction at a time.
type CPU struct {
	a  uint8
	f  uint8
	b  uint8
	c  uint8
	d  uint8
	e  uint8
	h  uint8
	l  uint8
	sp uint16
	pc uint16

	ime       bool
	eiPending bool // EI takes effect after the following instruction
	halted    bool

	// haltBug makes the next fetch skip the PC increment, so the opcode
	// byte is read twice. Set by HALT when IME=0 with a pending request.
	haltBug bool

	cycles uint64

	bus Bus
}

// New returns a CPU in the post-boot state, as the boot ROM leaves it.
func New(bus Bus) *CPU {
	cpu := &CPU{bus: bus}

	cpu.setAF(0x01B0)
	cpu.setBC(0x0013)
	cpu.setDE(0x00D8)
	cpu.setHL(0x014D)
	cpu.sp = 0xFFFE
	cpu.pc = 0x0100

	return cpu
}

// Step services pending interrupts, then fetches and executes a single
// instruction, returning the clock cycles consumed. The caller advances the
// other components by that amount. Encountering an opcode with no defined
// semantics is fatal and reported with its address and byte.
func (c *CPU) Step() (int, error) {
	if c.serviceInterrupt() {
		c.cycles += interruptCycles
		return interruptCycles, nil
	}

	if c.halted {
		// wake only when a request bit is set, delivered or not
		if c.pendingInterrupts() == 0 {
			c.cycles += 4
			return 4, nil
		}
		c.halted = false
	}

	// apply the EI delay after the instruction that follows EI
	enableAfter := c.eiPending

	fetchPC := c.pc
	opcode := c.bus.Read(c.pc)
	if c.haltBug {
		// the same byte will be fetched again as the next opcode or operand
		c.haltBug = false
	} else {
		c.pc++
	}

	table := &opcodes
	if opcode == 0xCB {
		opcode = c.bus.Read(c.pc)
		c.pc++
		table = &opcodesCB
	}

	entry := &table[opcode]
	if entry.run == nil {
		prefix := ""
		if table == &opcodesCB {
			prefix = "CB "
		}
		return 0, fmt.Errorf("%w: %s0x%02X at 0x%04X", ErrIllegalOpcode, prefix, opcode, fetchPC)
	}

	cycles := entry.cycles
	if entry.run(c) && entry.branchCycles != 0 {
		cycles = entry.branchCycles
	}
	c.cycles += uint64(cycles)

	if enableAfter && c.eiPending {
		c.eiPending = false
		c.ime = true
	}

	return cycles, nil
}

// serviceInterrupt dispatches the highest-priority enabled, requested
// interrupt if the master enable allows delivery. Reports whether one was
// dispatched.
func (c *CPU) serviceInterrupt() bool {
	if !c.ime {
		return false
	}

	pending := c.pendingInterrupts()
	if pending == 0 {
		return false
	}

	for i := uint8(0); i < 5; i++ {
		if !bit.IsSet(i, pending) {
			continue
		}
		// vectors sit 8 bytes apart: 0x40, 0x48, 0x50, 0x58, 0x60
		c.bus.Write(addr.IF, bit.Clear(i, c.bus.Read(addr.IF)))
		c.ime = false
		c.eiPending = false
		c.halted = false
		c.pushStack(c.pc)
		c.pc = baseInterruptVector + uint16(i)*8
		return true
	}

	return false
}

// pendingInterrupts returns the set of interrupts both requested and enabled.
func (c *CPU) pendingInterrupts() uint8 {
	return c.bus.Read(addr.IE) & c.bus.Read(addr.IF) & 0x1F
}

func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(value))
	c.sp--
	c.bus.Write(c.sp, bit.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

// readImmediate returns the byte at PC and advances PC past it.
func (c *CPU) readImmediate() uint8 {
	n := c.bus.Read(c.pc)
	c.pc++
	return n
}

// readImmediateWord returns the little-endian word at PC and advances PC.
func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bit.Combine(high, low)
}

func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &= ^uint8(flag)
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

// flagToBit returns 1 if the passed flag is set, 0 otherwise.
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

func (c *CPU) setBC(value uint16) {
	c.b = bit.High(value)
	c.c = bit.Low(value)
}

func (c *CPU) getBC() uint16 {
	return bit.Combine(c.b, c.c)
}

func (c *CPU) setDE(value uint16) {
	c.d = bit.High(value)
	c.e = bit.Low(value)
}

func (c *CPU) getDE() uint16 {
	return bit.Combine(c.d, c.e)
}

func (c *CPU) setHL(value uint16) {
	c.h = bit.High(value)
	c.l = bit.Low(value)
}

func (c *CPU) getHL() uint16 {
	return bit.Combine(c.h, c.l)
}

func (c *CPU) setAF(value uint16) {
	c.a = bit.High(value)
	// the low 4 bits of F do not exist in hardware
	c.f = bit.Low(value) & 0xF0
}

func (c *CPU) getAF() uint16 {
	return bit.Combine(c.a, c.f)
}

// Register and state getters, used by the disassembler, debug logging and tests.

func (c *CPU) A() uint8        { return c.a }
func (c *CPU) F() uint8        { return c.f }
func (c *CPU) BC() uint16      { return c.getBC() }
func (c *CPU) DE() uint16      { return c.getDE() }
func (c *CPU) HL() uint16      { return c.getHL() }
func (c *CPU) SP() uint16      { return c.sp }
func (c *CPU) PC() uint16      { return c.pc }
func (c *CPU) IME() bool       { return c.ime }
func (c *CPU) IsHalted() bool  { return c.halted }
func (c *CPU) Cycles() uint64  { return c.cycles }

// FlagString returns a human-readable view of the flag register, like "Z-HC".
func (c *CPU) FlagString() string {
	flags := []byte("----")
	if c.isSetFlag(zeroFlag) {
		flags[0] = 'Z'
	}
	if c.isSetFlag(subFlag) {
		flags[1] = 'N'
	}
	if c.isSetFlag(halfCarryFlag) {
		flags[2] = 'H'
	}
	if c.isSetFlag(carryFlag) {
		flags[3] = 'C'
	}
	return string(flags)
}
