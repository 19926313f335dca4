package cpu

import (
	"fmt"

	"github.com/andreav/dotboy/dotboy/bit"
)

// The CB-prefixed page is perfectly regular: eight operand slots per row
// (B, C, D, E, H, L, (HL), A) across rotates, shifts, SWAP, BIT, RES and
// SET. Building the table from that grid beats spelling out 256 entries.

type cbTarget struct {
	name string
	get  func(*CPU) uint8
	set  func(*CPU, uint8)
}

const cbMemorySlot = 6 // the (HL) column costs extra cycles

var cbTargets = [8]cbTarget{
	{"B", func(c *CPU) uint8 { return c.b }, func(c *CPU, v uint8) { c.b = v }},
	{"C", func(c *CPU) uint8 { return c.c }, func(c *CPU, v uint8) { c.c = v }},
	{"D", func(c *CPU) uint8 { return c.d }, func(c *CPU, v uint8) { c.d = v }},
	{"E", func(c *CPU) uint8 { return c.e }, func(c *CPU, v uint8) { c.e = v }},
	{"H", func(c *CPU) uint8 { return c.h }, func(c *CPU, v uint8) { c.h = v }},
	{"L", func(c *CPU) uint8 { return c.l }, func(c *CPU, v uint8) { c.l = v }},
	{"(HL)", (*CPU).readHL, (*CPU).writeHL},
	{"A", func(c *CPU) uint8 { return c.a }, func(c *CPU, v uint8) { c.a = v }},
}

var opcodesCB = buildCBTable()

func buildCBTable() [256]op {
	var table [256]op

	shiftRows := []struct {
		name  string
		apply func(*CPU, uint8) uint8
	}{
		{"RLC", func(c *CPU, v uint8) uint8 { return c.rlc(v, true) }},
		{"RRC", func(c *CPU, v uint8) uint8 { return c.rrc(v, true) }},
		{"RL", func(c *CPU, v uint8) uint8 { return c.rl(v, true) }},
		{"RR", func(c *CPU, v uint8) uint8 { return c.rr(v, true) }},
		{"SLA", (*CPU).sla},
		{"SRA", (*CPU).sra},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).srl},
	}

	// 0x00-0x3F: rotates, shifts, SWAP
	for row, shift := range shiftRows {
		apply := shift.apply
		for slot, target := range cbTargets {
			get, set := target.get, target.set
			table[row*8+slot] = o(shift.name+" "+target.name, 2, cbCycles(slot, 16),
				func(c *CPU) { set(c, apply(c, get(c))) })
		}
	}

	for n := uint8(0); n < 8; n++ {
		index := n
		for slot, target := range cbTargets {
			get, set := target.get, target.set

			// 0x40-0x7F: BIT n,r
			table[0x40+int(n)*8+slot] = o(fmt.Sprintf("BIT %d,%s", n, target.name), 2,
				cbCycles(slot, 12),
				func(c *CPU) { c.bitTest(index, get(c)) })

			// 0x80-0xBF: RES n,r
			table[0x80+int(n)*8+slot] = o(fmt.Sprintf("RES %d,%s", n, target.name), 2,
				cbCycles(slot, 16),
				func(c *CPU) { set(c, bit.Clear(index, get(c))) })

			// 0xC0-0xFF: SET n,r
			table[0xC0+int(n)*8+slot] = o(fmt.Sprintf("SET %d,%s", n, target.name), 2,
				cbCycles(slot, 16),
				func(c *CPU) { set(c, bit.Set(index, get(c))) })
		}
	}

	return table
}

func cbCycles(slot, memoryCost int) int {
	if slot == cbMemorySlot {
		return memoryCost
	}
	return 8
}
