package cpu

import (
	"fmt"
	"strings"
)

// Disassemble decodes the instruction at address without executing it,
// returning a printable form and the instruction length in bytes. Useful
// for trace logging around a fault address.
func (c *CPU) Disassemble(address uint16) (string, int) {
	opcode := c.bus.Read(address)
	table := &opcodes
	if opcode == 0xCB {
		opcode = c.bus.Read(address + 1)
		table = &opcodesCB
	}

	entry := &table[opcode]
	length := entry.length
	if entry.run == nil {
		return fmt.Sprintf("0x%04X: %02X ??", address, opcode), 1
	}

	var raw strings.Builder
	for i := 0; i < length; i++ {
		fmt.Fprintf(&raw, "%02X ", c.bus.Read(address+uint16(i)))
	}

	return fmt.Sprintf("0x%04X: %-9s%s", address, raw.String(), entry.name), length
}
