package cpu

// Shared instruction semantics. Each helper mutates the register file and
// flags exactly per the SM83 truth tables; the dispatch table in table.go
// binds them to opcodes and owns all cycle accounting.

func (c *CPU) addToA(value uint8, withCarry bool) {
	carryIn := uint8(0)
	if withCarry && c.isSetFlag(carryFlag) {
		carryIn = 1
	}

	a := c.a
	result := a + value + carryIn

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF)+(value&0xF)+carryIn > 0xF)
	c.setFlagToCondition(carryFlag, uint16(a)+uint16(value)+uint16(carryIn) > 0xFF)

	c.a = result
}

// subFromA subtracts value (plus carry for SBC) from A. When store is false
// the result is discarded, which is CP.
func (c *CPU) subFromA(value uint8, withCarry, store bool) {
	carryIn := uint8(0)
	if withCarry && c.isSetFlag(carryFlag) {
		carryIn = 1
	}

	a := c.a
	result := a - value - carryIn

	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF) < (value&0xF)+carryIn)
	c.setFlagToCondition(carryFlag, uint16(a) < uint16(value)+uint16(carryIn))

	if store {
		c.a = result
	}
}

func (c *CPU) andA(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) orA(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xorA(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// inc8 computes value+1 with INC's flag behavior (carry untouched).
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, value&0xF == 0xF)
	return result
}

// dec8 computes value-1 with DEC's flag behavior (carry untouched).
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1
	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, value&0xF == 0)
	return result
}

// addToHL adds a 16-bit register to HL. Half-carry comes from bit 11,
// carry from bit 15; the zero flag is untouched.
func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()

	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.setFlagToCondition(carryFlag, uint32(hl)+uint32(value) > 0xFFFF)

	c.setHL(hl + value)
}

// addToSP computes SP+e8 for ADD SP,e8 and LD HL,SP+e8. Despite being a
// 16-bit operation, half-carry and carry come from bits 3 and 7 of the
// unsigned low-byte addition.
func (c *CPU) addToSP(offset int8) uint16 {
	sp := c.sp
	e := uint16(int16(offset))

	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (sp&0xF)+(e&0xF) > 0xF)
	c.setFlagToCondition(carryFlag, (sp&0xFF)+(e&0xFF) > 0xFF)

	return sp + e
}

// daa corrects A into packed BCD after an addition or subtraction, using
// the N/H/C flags the previous operation left behind.
func (c *CPU) daa() {
	a := uint16(c.a)

	if c.isSetFlag(subFlag) {
		if c.isSetFlag(halfCarryFlag) {
			a = (a - 0x06) & 0xFF
		}
		if c.isSetFlag(carryFlag) {
			a -= 0x60
		}
	} else {
		if c.isSetFlag(halfCarryFlag) || a&0x0F > 0x09 {
			a += 0x06
		}
		if c.isSetFlag(carryFlag) || a > 0x9F {
			a += 0x60
		}
	}

	if a&0x100 != 0 {
		c.setFlag(carryFlag)
	}
	c.a = uint8(a)
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(halfCarryFlag)
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) scf() {
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlag(carryFlag)
}

func (c *CPU) ccf() {
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
}

// Rotates and shifts. The CB-prefixed forms set the zero flag from the
// result; RLCA/RLA/RRCA/RRA always clear it, hence setZero.

func (c *CPU) rlc(value uint8, setZero bool) uint8 {
	result := (value << 1) | (value >> 7)
	c.setRotateFlags(result, value&0x80 != 0, setZero)
	return result
}

func (c *CPU) rrc(value uint8, setZero bool) uint8 {
	result := (value >> 1) | (value << 7)
	c.setRotateFlags(result, value&0x01 != 0, setZero)
	return result
}

func (c *CPU) rl(value uint8, setZero bool) uint8 {
	result := (value << 1) | c.flagToBit(carryFlag)
	c.setRotateFlags(result, value&0x80 != 0, setZero)
	return result
}

func (c *CPU) rr(value uint8, setZero bool) uint8 {
	result := (value >> 1) | (c.flagToBit(carryFlag) << 7)
	c.setRotateFlags(result, value&0x01 != 0, setZero)
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	result := value << 1
	c.setRotateFlags(result, value&0x80 != 0, true)
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	result := (value >> 1) | (value & 0x80)
	c.setRotateFlags(result, value&0x01 != 0, true)
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	result := value >> 1
	c.setRotateFlags(result, value&0x01 != 0, true)
	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := (value << 4) | (value >> 4)
	c.setRotateFlags(result, false, true)
	return result
}

func (c *CPU) setRotateFlags(result uint8, carry, setZero bool) {
	c.setFlagToCondition(zeroFlag, setZero && result == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
}

func (c *CPU) bitTest(index, value uint8) {
	c.setFlagToCondition(zeroFlag, value&(1<<index) == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// Control flow.

func (c *CPU) jr(condition bool) bool {
	offset := c.readSignedImmediate()
	if condition {
		c.pc = uint16(int32(c.pc) + int32(offset))
	}
	return condition
}

func (c *CPU) jp(condition bool) bool {
	target := c.readImmediateWord()
	if condition {
		c.pc = target
	}
	return condition
}

func (c *CPU) call(condition bool) bool {
	target := c.readImmediateWord()
	if condition {
		c.pushStack(c.pc)
		c.pc = target
	}
	return condition
}

func (c *CPU) ret(condition bool) bool {
	if condition {
		c.pc = c.popStack()
	}
	return condition
}

func (c *CPU) rst(vector uint16) {
	c.pushStack(c.pc)
	c.pc = vector
}

// Memory access through HL.

func (c *CPU) readHL() uint8 {
	return c.bus.Read(c.getHL())
}

func (c *CPU) writeHL(value uint8) {
	c.bus.Write(c.getHL(), value)
}

func (c *CPU) halt() {
	if !c.ime && c.pendingInterrupts() != 0 {
		// halt bug: HALT is skipped and the next opcode byte is fetched twice
		c.haltBug = true
		return
	}
	c.halted = true
}
