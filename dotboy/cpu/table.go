package cpu

// The dispatch tables are fixed data: one record per opcode with its
// mnemonic, encoded length, cycle costs and operation. Step consults
// cycles/branchCycles so that cycle accounting lives in exactly one place.

// opFunc executes one instruction. The return value reports whether a
// conditional branch was taken, selecting branchCycles over cycles.
type opFunc func(*CPU) bool

type op struct {
	name         string
	length       int // bytes, including opcode and CB prefix
	cycles       int // clock cycles when not branching
	branchCycles int // clock cycles when a condition is met, 0 if n/a
	run          opFunc
}

// o builds an unconditional entry.
func o(name string, length, cycles int, f func(*CPU)) op {
	return op{name: name, length: length, cycles: cycles,
		run: func(c *CPU) bool { f(c); return false }}
}

// br builds a conditional entry with a taken/not-taken cycle split.
func br(name string, length, cycles, branchCycles int, f opFunc) op {
	return op{name: name, length: length, cycles: cycles, branchCycles: branchCycles, run: f}
}

// illegal marks an opcode with no defined semantics; executing one is fatal.
func illegal() op {
	return op{name: "ILLEGAL", length: 1}
}

var opcodes = [256]op{
	// 0x00
	0x00: o("NOP", 1, 4, func(c *CPU) {}),
	0x01: o("LD BC,d16", 3, 12, func(c *CPU) { c.setBC(c.readImmediateWord()) }),
	0x02: o("LD (BC),A", 1, 8, func(c *CPU) { c.bus.Write(c.getBC(), c.a) }),
	0x03: o("INC BC", 1, 8, func(c *CPU) { c.setBC(c.getBC() + 1) }),
	0x04: o("INC B", 1, 4, func(c *CPU) { c.b = c.inc8(c.b) }),
	0x05: o("DEC B", 1, 4, func(c *CPU) { c.b = c.dec8(c.b) }),
	0x06: o("LD B,d8", 2, 8, func(c *CPU) { c.b = c.readImmediate() }),
	0x07: o("RLCA", 1, 4, func(c *CPU) { c.a = c.rlc(c.a, false) }),
	0x08: o("LD (a16),SP", 3, 20, func(c *CPU) {
		target := c.readImmediateWord()
		c.bus.Write(target, uint8(c.sp))
		c.bus.Write(target+1, uint8(c.sp>>8))
	}),
	0x09: o("ADD HL,BC", 1, 8, func(c *CPU) { c.addToHL(c.getBC()) }),
	0x0A: o("LD A,(BC)", 1, 8, func(c *CPU) { c.a = c.bus.Read(c.getBC()) }),
	0x0B: o("DEC BC", 1, 8, func(c *CPU) { c.setBC(c.getBC() - 1) }),
	0x0C: o("INC C", 1, 4, func(c *CPU) { c.c = c.inc8(c.c) }),
	0x0D: o("DEC C", 1, 4, func(c *CPU) { c.c = c.dec8(c.c) }),
	0x0E: o("LD C,d8", 2, 8, func(c *CPU) { c.c = c.readImmediate() }),
	0x0F: o("RRCA", 1, 4, func(c *CPU) { c.a = c.rrc(c.a, false) }),

	// 0x10
	0x10: o("STOP", 2, 4, func(c *CPU) { c.readImmediate() }),
	0x11: o("LD DE,d16", 3, 12, func(c *CPU) { c.setDE(c.readImmediateWord()) }),
	0x12: o("LD (DE),A", 1, 8, func(c *CPU) { c.bus.Write(c.getDE(), c.a) }),
	0x13: o("INC DE", 1, 8, func(c *CPU) { c.setDE(c.getDE() + 1) }),
	0x14: o("INC D", 1, 4, func(c *CPU) { c.d = c.inc8(c.d) }),
	0x15: o("DEC D", 1, 4, func(c *CPU) { c.d = c.dec8(c.d) }),
	0x16: o("LD D,d8", 2, 8, func(c *CPU) { c.d = c.readImmediate() }),
	0x17: o("RLA", 1, 4, func(c *CPU) { c.a = c.rl(c.a, false) }),
	0x18: o("JR r8", 2, 12, func(c *CPU) { c.jr(true) }),
	0x19: o("ADD HL,DE", 1, 8, func(c *CPU) { c.addToHL(c.getDE()) }),
	0x1A: o("LD A,(DE)", 1, 8, func(c *CPU) { c.a = c.bus.Read(c.getDE()) }),
	0x1B: o("DEC DE", 1, 8, func(c *CPU) { c.setDE(c.getDE() - 1) }),
	0x1C: o("INC E", 1, 4, func(c *CPU) { c.e = c.inc8(c.e) }),
	0x1D: o("DEC E", 1, 4, func(c *CPU) { c.e = c.dec8(c.e) }),
	0x1E: o("LD E,d8", 2, 8, func(c *CPU) { c.e = c.readImmediate() }),
	0x1F: o("RRA", 1, 4, func(c *CPU) { c.a = c.rr(c.a, false) }),

	// 0x20
	0x20: br("JR NZ,r8", 2, 8, 12, func(c *CPU) bool { return c.jr(!c.isSetFlag(zeroFlag)) }),
	0x21: o("LD HL,d16", 3, 12, func(c *CPU) { c.setHL(c.readImmediateWord()) }),
	0x22: o("LD (HL+),A", 1, 8, func(c *CPU) { c.writeHL(c.a); c.setHL(c.getHL() + 1) }),
	0x23: o("INC HL", 1, 8, func(c *CPU) { c.setHL(c.getHL() + 1) }),
	0x24: o("INC H", 1, 4, func(c *CPU) { c.h = c.inc8(c.h) }),
	0x25: o("DEC H", 1, 4, func(c *CPU) { c.h = c.dec8(c.h) }),
	0x26: o("LD H,d8", 2, 8, func(c *CPU) { c.h = c.readImmediate() }),
	0x27: o("DAA", 1, 4, func(c *CPU) { c.daa() }),
	0x28: br("JR Z,r8", 2, 8, 12, func(c *CPU) bool { return c.jr(c.isSetFlag(zeroFlag)) }),
	0x29: o("ADD HL,HL", 1, 8, func(c *CPU) { c.addToHL(c.getHL()) }),
	0x2A: o("LD A,(HL+)", 1, 8, func(c *CPU) { c.a = c.readHL(); c.setHL(c.getHL() + 1) }),
	0x2B: o("DEC HL", 1, 8, func(c *CPU) { c.setHL(c.getHL() - 1) }),
	0x2C: o("INC L", 1, 4, func(c *CPU) { c.l = c.inc8(c.l) }),
	0x2D: o("DEC L", 1, 4, func(c *CPU) { c.l = c.dec8(c.l) }),
	0x2E: o("LD L,d8", 2, 8, func(c *CPU) { c.l = c.readImmediate() }),
	0x2F: o("CPL", 1, 4, func(c *CPU) { c.cpl() }),

	// 0x30
	0x30: br("JR NC,r8", 2, 8, 12, func(c *CPU) bool { return c.jr(!c.isSetFlag(carryFlag)) }),
	0x31: o("LD SP,d16", 3, 12, func(c *CPU) { c.sp = c.readImmediateWord() }),
	0x32: o("LD (HL-),A", 1, 8, func(c *CPU) { c.writeHL(c.a); c.setHL(c.getHL() - 1) }),
	0x33: o("INC SP", 1, 8, func(c *CPU) { c.sp++ }),
	0x34: o("INC (HL)", 1, 12, func(c *CPU) { c.writeHL(c.inc8(c.readHL())) }),
	0x35: o("DEC (HL)", 1, 12, func(c *CPU) { c.writeHL(c.dec8(c.readHL())) }),
	0x36: o("LD (HL),d8", 2, 12, func(c *CPU) { c.writeHL(c.readImmediate()) }),
	0x37: o("SCF", 1, 4, func(c *CPU) { c.scf() }),
	0x38: br("JR C,r8", 2, 8, 12, func(c *CPU) bool { return c.jr(c.isSetFlag(carryFlag)) }),
	0x39: o("ADD HL,SP", 1, 8, func(c *CPU) { c.addToHL(c.sp) }),
	0x3A: o("LD A,(HL-)", 1, 8, func(c *CPU) { c.a = c.readHL(); c.setHL(c.getHL() - 1) }),
	0x3B: o("DEC SP", 1, 8, func(c *CPU) { c.sp-- }),
	0x3C: o("INC A", 1, 4, func(c *CPU) { c.a = c.inc8(c.a) }),
	0x3D: o("DEC A", 1, 4, func(c *CPU) { c.a = c.dec8(c.a) }),
	0x3E: o("LD A,d8", 2, 8, func(c *CPU) { c.a = c.readImmediate() }),
	0x3F: o("CCF", 1, 4, func(c *CPU) { c.ccf() }),

	// 0x40: LD r,r
	0x40: o("LD B,B", 1, 4, func(c *CPU) {}),
	0x41: o("LD B,C", 1, 4, func(c *CPU) { c.b = c.c }),
	0x42: o("LD B,D", 1, 4, func(c *CPU) { c.b = c.d }),
	0x43: o("LD B,E", 1, 4, func(c *CPU) { c.b = c.e }),
	0x44: o("LD B,H", 1, 4, func(c *CPU) { c.b = c.h }),
	0x45: o("LD B,L", 1, 4, func(c *CPU) { c.b = c.l }),
	0x46: o("LD B,(HL)", 1, 8, func(c *CPU) { c.b = c.readHL() }),
	0x47: o("LD B,A", 1, 4, func(c *CPU) { c.b = c.a }),
	0x48: o("LD C,B", 1, 4, func(c *CPU) { c.c = c.b }),
	0x49: o("LD C,C", 1, 4, func(c *CPU) {}),
	0x4A: o("LD C,D", 1, 4, func(c *CPU) { c.c = c.d }),
	0x4B: o("LD C,E", 1, 4, func(c *CPU) { c.c = c.e }),
	0x4C: o("LD C,H", 1, 4, func(c *CPU) { c.c = c.h }),
	0x4D: o("LD C,L", 1, 4, func(c *CPU) { c.c = c.l }),
	0x4E: o("LD C,(HL)", 1, 8, func(c *CPU) { c.c = c.readHL() }),
	0x4F: o("LD C,A", 1, 4, func(c *CPU) { c.c = c.a }),

	// 0x50
	0x50: o("LD D,B", 1, 4, func(c *CPU) { c.d = c.b }),
	0x51: o("LD D,C", 1, 4, func(c *CPU) { c.d = c.c }),
	0x52: o("LD D,D", 1, 4, func(c *CPU) {}),
	0x53: o("LD D,E", 1, 4, func(c *CPU) { c.d = c.e }),
	0x54: o("LD D,H", 1, 4, func(c *CPU) { c.d = c.h }),
	0x55: o("LD D,L", 1, 4, func(c *CPU) { c.d = c.l }),
	0x56: o("LD D,(HL)", 1, 8, func(c *CPU) { c.d = c.readHL() }),
	0x57: o("LD D,A", 1, 4, func(c *CPU) { c.d = c.a }),
	0x58: o("LD E,B", 1, 4, func(c *CPU) { c.e = c.b }),
	0x59: o("LD E,C", 1, 4, func(c *CPU) { c.e = c.c }),
	0x5A: o("LD E,D", 1, 4, func(c *CPU) { c.e = c.d }),
	0x5B: o("LD E,E", 1, 4, func(c *CPU) {}),
	0x5C: o("LD E,H", 1, 4, func(c *CPU) { c.e = c.h }),
	0x5D: o("LD E,L", 1, 4, func(c *CPU) { c.e = c.l }),
	0x5E: o("LD E,(HL)", 1, 8, func(c *CPU) { c.e = c.readHL() }),
	0x5F: o("LD E,A", 1, 4, func(c *CPU) { c.e = c.a }),

	// 0x60
	0x60: o("LD H,B", 1, 4, func(c *CPU) { c.h = c.b }),
	0x61: o("LD H,C", 1, 4, func(c *CPU) { c.h = c.c }),
	0x62: o("LD H,D", 1, 4, func(c *CPU) { c.h = c.d }),
	0x63: o("LD H,E", 1, 4, func(c *CPU) { c.h = c.e }),
	0x64: o("LD H,H", 1, 4, func(c *CPU) {}),
	0x65: o("LD H,L", 1, 4, func(c *CPU) { c.h = c.l }),
	0x66: o("LD H,(HL)", 1, 8, func(c *CPU) { c.h = c.readHL() }),
	0x67: o("LD H,A", 1, 4, func(c *CPU) { c.h = c.a }),
	0x68: o("LD L,B", 1, 4, func(c *CPU) { c.l = c.b }),
	0x69: o("LD L,C", 1, 4, func(c *CPU) { c.l = c.c }),
	0x6A: o("LD L,D", 1, 4, func(c *CPU) { c.l = c.d }),
	0x6B: o("LD L,E", 1, 4, func(c *CPU) { c.l = c.e }),
	0x6C: o("LD L,H", 1, 4, func(c *CPU) { c.l = c.h }),
	0x6D: o("LD L,L", 1, 4, func(c *CPU) {}),
	0x6E: o("LD L,(HL)", 1, 8, func(c *CPU) { c.l = c.readHL() }),
	0x6F: o("LD L,A", 1, 4, func(c *CPU) { c.l = c.a }),

	// 0x70
	0x70: o("LD (HL),B", 1, 8, func(c *CPU) { c.writeHL(c.b) }),
	0x71: o("LD (HL),C", 1, 8, func(c *CPU) { c.writeHL(c.c) }),
	0x72: o("LD (HL),D", 1, 8, func(c *CPU) { c.writeHL(c.d) }),
	0x73: o("LD (HL),E", 1, 8, func(c *CPU) { c.writeHL(c.e) }),
	0x74: o("LD (HL),H", 1, 8, func(c *CPU) { c.writeHL(c.h) }),
	0x75: o("LD (HL),L", 1, 8, func(c *CPU) { c.writeHL(c.l) }),
	0x76: o("HALT", 1, 4, func(c *CPU) { c.halt() }),
	0x77: o("LD (HL),A", 1, 8, func(c *CPU) { c.writeHL(c.a) }),
	0x78: o("LD A,B", 1, 4, func(c *CPU) { c.a = c.b }),
	0x79: o("LD A,C", 1, 4, func(c *CPU) { c.a = c.c }),
	0x7A: o("LD A,D", 1, 4, func(c *CPU) { c.a = c.d }),
	0x7B: o("LD A,E", 1, 4, func(c *CPU) { c.a = c.e }),
	0x7C: o("LD A,H", 1, 4, func(c *CPU) { c.a = c.h }),
	0x7D: o("LD A,L", 1, 4, func(c *CPU) { c.a = c.l }),
	0x7E: o("LD A,(HL)", 1, 8, func(c *CPU) { c.a = c.readHL() }),
	0x7F: o("LD A,A", 1, 4, func(c *CPU) {}),

	// 0x80: ADD/ADC
	0x80: o("ADD A,B", 1, 4, func(c *CPU) { c.addToA(c.b, false) }),
	0x81: o("ADD A,C", 1, 4, func(c *CPU) { c.addToA(c.c, false) }),
	0x82: o("ADD A,D", 1, 4, func(c *CPU) { c.addToA(c.d, false) }),
	0x83: o("ADD A,E", 1, 4, func(c *CPU) { c.addToA(c.e, false) }),
	0x84: o("ADD A,H", 1, 4, func(c *CPU) { c.addToA(c.h, false) }),
	0x85: o("ADD A,L", 1, 4, func(c *CPU) { c.addToA(c.l, false) }),
	0x86: o("ADD A,(HL)", 1, 8, func(c *CPU) { c.addToA(c.readHL(), false) }),
	0x87: o("ADD A,A", 1, 4, func(c *CPU) { c.addToA(c.a, false) }),
	0x88: o("ADC A,B", 1, 4, func(c *CPU) { c.addToA(c.b, true) }),
	0x89: o("ADC A,C", 1, 4, func(c *CPU) { c.addToA(c.c, true) }),
	0x8A: o("ADC A,D", 1, 4, func(c *CPU) { c.addToA(c.d, true) }),
	0x8B: o("ADC A,E", 1, 4, func(c *CPU) { c.addToA(c.e, true) }),
	0x8C: o("ADC A,H", 1, 4, func(c *CPU) { c.addToA(c.h, true) }),
	0x8D: o("ADC A,L", 1, 4, func(c *CPU) { c.addToA(c.l, true) }),
	0x8E: o("ADC A,(HL)", 1, 8, func(c *CPU) { c.addToA(c.readHL(), true) }),
	0x8F: o("ADC A,A", 1, 4, func(c *CPU) { c.addToA(c.a, true) }),

	// 0x90: SUB/SBC
	0x90: o("SUB B", 1, 4, func(c *CPU) { c.subFromA(c.b, false, true) }),
	0x91: o("SUB C", 1, 4, func(c *CPU) { c.subFromA(c.c, false, true) }),
	0x92: o("SUB D", 1, 4, func(c *CPU) { c.subFromA(c.d, false, true) }),
	0x93: o("SUB E", 1, 4, func(c *CPU) { c.subFromA(c.e, false, true) }),
	0x94: o("SUB H", 1, 4, func(c *CPU) { c.subFromA(c.h, false, true) }),
	0x95: o("SUB L", 1, 4, func(c *CPU) { c.subFromA(c.l, false, true) }),
	0x96: o("SUB (HL)", 1, 8, func(c *CPU) { c.subFromA(c.readHL(), false, true) }),
	0x97: o("SUB A", 1, 4, func(c *CPU) { c.subFromA(c.a, false, true) }),
	0x98: o("SBC A,B", 1, 4, func(c *CPU) { c.subFromA(c.b, true, true) }),
	0x99: o("SBC A,C", 1, 4, func(c *CPU) { c.subFromA(c.c, true, true) }),
	0x9A: o("SBC A,D", 1, 4, func(c *CPU) { c.subFromA(c.d, true, true) }),
	0x9B: o("SBC A,E", 1, 4, func(c *CPU) { c.subFromA(c.e, true, true) }),
	0x9C: o("SBC A,H", 1, 4, func(c *CPU) { c.subFromA(c.h, true, true) }),
	0x9D: o("SBC A,L", 1, 4, func(c *CPU) { c.subFromA(c.l, true, true) }),
	0x9E: o("SBC A,(HL)", 1, 8, func(c *CPU) { c.subFromA(c.readHL(), true, true) }),
	0x9F: o("SBC A,A", 1, 4, func(c *CPU) { c.subFromA(c.a, true, true) }),

	// 0xA0: AND/XOR
	0xA0: o("AND B", 1, 4, func(c *CPU) { c.andA(c.b) }),
	0xA1: o("AND C", 1, 4, func(c *CPU) { c.andA(c.c) }),
	0xA2: o("AND D", 1, 4, func(c *CPU) { c.andA(c.d) }),
	0xA3: o("AND E", 1, 4, func(c *CPU) { c.andA(c.e) }),
	0xA4: o("AND H", 1, 4, func(c *CPU) { c.andA(c.h) }),
	0xA5: o("AND L", 1, 4, func(c *CPU) { c.andA(c.l) }),
	0xA6: o("AND (HL)", 1, 8, func(c *CPU) { c.andA(c.readHL()) }),
	0xA7: o("AND A", 1, 4, func(c *CPU) { c.andA(c.a) }),
	0xA8: o("XOR B", 1, 4, func(c *CPU) { c.xorA(c.b) }),
	0xA9: o("XOR C", 1, 4, func(c *CPU) { c.xorA(c.c) }),
	0xAA: o("XOR D", 1, 4, func(c *CPU) { c.xorA(c.d) }),
	0xAB: o("XOR E", 1, 4, func(c *CPU) { c.xorA(c.e) }),
	0xAC: o("XOR H", 1, 4, func(c *CPU) { c.xorA(c.h) }),
	0xAD: o("XOR L", 1, 4, func(c *CPU) { c.xorA(c.l) }),
	0xAE: o("XOR (HL)", 1, 8, func(c *CPU) { c.xorA(c.readHL()) }),
	0xAF: o("XOR A", 1, 4, func(c *CPU) { c.xorA(c.a) }),

	// 0xB0: OR/CP
	0xB0: o("OR B", 1, 4, func(c *CPU) { c.orA(c.b) }),
	0xB1: o("OR C", 1, 4, func(c *CPU) { c.orA(c.c) }),
	0xB2: o("OR D", 1, 4, func(c *CPU) { c.orA(c.d) }),
	0xB3: o("OR E", 1, 4, func(c *CPU) { c.orA(c.e) }),
	0xB4: o("OR H", 1, 4, func(c *CPU) { c.orA(c.h) }),
	0xB5: o("OR L", 1, 4, func(c *CPU) { c.orA(c.l) }),
	0xB6: o("OR (HL)", 1, 8, func(c *CPU) { c.orA(c.readHL()) }),
	0xB7: o("OR A", 1, 4, func(c *CPU) { c.orA(c.a) }),
	0xB8: o("CP B", 1, 4, func(c *CPU) { c.subFromA(c.b, false, false) }),
	0xB9: o("CP C", 1, 4, func(c *CPU) { c.subFromA(c.c, false, false) }),
	0xBA: o("CP D", 1, 4, func(c *CPU) { c.subFromA(c.d, false, false) }),
	0xBB: o("CP E", 1, 4, func(c *CPU) { c.subFromA(c.e, false, false) }),
	0xBC: o("CP H", 1, 4, func(c *CPU) { c.subFromA(c.h, false, false) }),
	0xBD: o("CP L", 1, 4, func(c *CPU) { c.subFromA(c.l, false, false) }),
	0xBE: o("CP (HL)", 1, 8, func(c *CPU) { c.subFromA(c.readHL(), false, false) }),
	0xBF: o("CP A", 1, 4, func(c *CPU) { c.subFromA(c.a, false, false) }),

	// 0xC0
	0xC0: br("RET NZ", 1, 8, 20, func(c *CPU) bool { return c.ret(!c.isSetFlag(zeroFlag)) }),
	0xC1: o("POP BC", 1, 12, func(c *CPU) { c.setBC(c.popStack()) }),
	0xC2: br("JP NZ,a16", 3, 12, 16, func(c *CPU) bool { return c.jp(!c.isSetFlag(zeroFlag)) }),
	0xC3: o("JP a16", 3, 16, func(c *CPU) { c.jp(true) }),
	0xC4: br("CALL NZ,a16", 3, 12, 24, func(c *CPU) bool { return c.call(!c.isSetFlag(zeroFlag)) }),
	0xC5: o("PUSH BC", 1, 16, func(c *CPU) { c.pushStack(c.getBC()) }),
	0xC6: o("ADD A,d8", 2, 8, func(c *CPU) { c.addToA(c.readImmediate(), false) }),
	0xC7: o("RST 00H", 1, 16, func(c *CPU) { c.rst(0x00) }),
	0xC8: br("RET Z", 1, 8, 20, func(c *CPU) bool { return c.ret(c.isSetFlag(zeroFlag)) }),
	0xC9: o("RET", 1, 16, func(c *CPU) { c.ret(true) }),
	0xCA: br("JP Z,a16", 3, 12, 16, func(c *CPU) bool { return c.jp(c.isSetFlag(zeroFlag)) }),
	// 0xCB is the extended-table prefix; Step never dispatches through this slot.
	0xCB: o("PREFIX CB", 1, 4, func(c *CPU) {}),
	0xCC: br("CALL Z,a16", 3, 12, 24, func(c *CPU) bool { return c.call(c.isSetFlag(zeroFlag)) }),
	0xCD: o("CALL a16", 3, 24, func(c *CPU) { c.call(true) }),
	0xCE: o("ADC A,d8", 2, 8, func(c *CPU) { c.addToA(c.readImmediate(), true) }),
	0xCF: o("RST 08H", 1, 16, func(c *CPU) { c.rst(0x08) }),

	// 0xD0
	0xD0: br("RET NC", 1, 8, 20, func(c *CPU) bool { return c.ret(!c.isSetFlag(carryFlag)) }),
	0xD1: o("POP DE", 1, 12, func(c *CPU) { c.setDE(c.popStack()) }),
	0xD2: br("JP NC,a16", 3, 12, 16, func(c *CPU) bool { return c.jp(!c.isSetFlag(carryFlag)) }),
	0xD3: illegal(),
	0xD4: br("CALL NC,a16", 3, 12, 24, func(c *CPU) bool { return c.call(!c.isSetFlag(carryFlag)) }),
	0xD5: o("PUSH DE", 1, 16, func(c *CPU) { c.pushStack(c.getDE()) }),
	0xD6: o("SUB d8", 2, 8, func(c *CPU) { c.subFromA(c.readImmediate(), false, true) }),
	0xD7: o("RST 10H", 1, 16, func(c *CPU) { c.rst(0x10) }),
	0xD8: br("RET C", 1, 8, 20, func(c *CPU) bool { return c.ret(c.isSetFlag(carryFlag)) }),
	0xD9: o("RETI", 1, 16, func(c *CPU) { c.ret(true); c.ime = true }),
	0xDA: br("JP C,a16", 3, 12, 16, func(c *CPU) bool { return c.jp(c.isSetFlag(carryFlag)) }),
	0xDB: illegal(),
	0xDC: br("CALL C,a16", 3, 12, 24, func(c *CPU) bool { return c.call(c.isSetFlag(carryFlag)) }),
	0xDD: illegal(),
	0xDE: o("SBC A,d8", 2, 8, func(c *CPU) { c.subFromA(c.readImmediate(), true, true) }),
	0xDF: o("RST 18H", 1, 16, func(c *CPU) { c.rst(0x18) }),

	// 0xE0
	0xE0: o("LDH (a8),A", 2, 12, func(c *CPU) { c.bus.Write(0xFF00+uint16(c.readImmediate()), c.a) }),
	0xE1: o("POP HL", 1, 12, func(c *CPU) { c.setHL(c.popStack()) }),
	0xE2: o("LD (C),A", 1, 8, func(c *CPU) { c.bus.Write(0xFF00+uint16(c.c), c.a) }),
	0xE3: illegal(),
	0xE4: illegal(),
	0xE5: o("PUSH HL", 1, 16, func(c *CPU) { c.pushStack(c.getHL()) }),
	0xE6: o("AND d8", 2, 8, func(c *CPU) { c.andA(c.readImmediate()) }),
	0xE7: o("RST 20H", 1, 16, func(c *CPU) { c.rst(0x20) }),
	0xE8: o("ADD SP,r8", 2, 16, func(c *CPU) { c.sp = c.addToSP(c.readSignedImmediate()) }),
	0xE9: o("JP (HL)", 1, 4, func(c *CPU) { c.pc = c.getHL() }),
	0xEA: o("LD (a16),A", 3, 16, func(c *CPU) { c.bus.Write(c.readImmediateWord(), c.a) }),
	0xEB: illegal(),
	0xEC: illegal(),
	0xED: illegal(),
	0xEE: o("XOR d8", 2, 8, func(c *CPU) { c.xorA(c.readImmediate()) }),
	0xEF: o("RST 28H", 1, 16, func(c *CPU) { c.rst(0x28) }),

	// 0xF0
	0xF0: o("LDH A,(a8)", 2, 12, func(c *CPU) { c.a = c.bus.Read(0xFF00 + uint16(c.readImmediate())) }),
	0xF1: o("POP AF", 1, 12, func(c *CPU) { c.setAF(c.popStack()) }),
	0xF2: o("LD A,(C)", 1, 8, func(c *CPU) { c.a = c.bus.Read(0xFF00 + uint16(c.c)) }),
	0xF3: o("DI", 1, 4, func(c *CPU) { c.ime = false; c.eiPending = false }),
	0xF4: illegal(),
	0xF5: o("PUSH AF", 1, 16, func(c *CPU) { c.pushStack(c.getAF()) }),
	0xF6: o("OR d8", 2, 8, func(c *CPU) { c.orA(c.readImmediate()) }),
	0xF7: o("RST 30H", 1, 16, func(c *CPU) { c.rst(0x30) }),
	0xF8: o("LD HL,SP+r8", 2, 12, func(c *CPU) { c.setHL(c.addToSP(c.readSignedImmediate())) }),
	0xF9: o("LD SP,HL", 1, 8, func(c *CPU) { c.sp = c.getHL() }),
	0xFA: o("LD A,(a16)", 3, 16, func(c *CPU) { c.a = c.bus.Read(c.readImmediateWord()) }),
	0xFB: o("EI", 1, 4, func(c *CPU) { c.eiPending = true }),
	0xFC: illegal(),
	0xFD: illegal(),
	0xFE: o("CP d8", 2, 8, func(c *CPU) { c.subFromA(c.readImmediate(), false, false) }),
	0xFF: o("RST 38H", 1, 16, func(c *CPU) { c.rst(0x38) }),
}
