package memory

import (
	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// The P1 register is a selector: bits 4-5 choose which button group the low
// four bits expose. 1 means released, 0 means pressed; bits 6-7 always read
// as 1. With no group selected the low bits float high (0x0F).

func (m *MMU) updateJoypadRegister() {
	p1 := m.memory[addr.P1]
	result := uint8(0b11000000)
	result |= p1 & 0b00110000

	selectDpad := !bit.IsSet(4, p1)
	selectButtons := !bit.IsSet(5, p1)

	switch {
	case selectButtons && !selectDpad:
		result |= m.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= m.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= m.joypadButtons & m.joypadDpad & 0x0F
	default:
		result |= 0x0F
	}

	m.memory[addr.P1] = result
}

func (m *MMU) writeJoypad(value uint8) {
	// only the selection bits are writable
	m.memory[addr.P1] = value & 0b00110000
	m.updateJoypadRegister()
}

// HandleKeyPress marks a key as held and requests the joypad interrupt on a
// released-to-pressed transition.
func (m *MMU) HandleKeyPress(key JoypadKey) {
	oldButtons := m.joypadButtons
	oldDpad := m.joypadDpad

	switch key {
	case JoypadRight:
		m.joypadDpad = bit.Clear(0, m.joypadDpad)
	case JoypadLeft:
		m.joypadDpad = bit.Clear(1, m.joypadDpad)
	case JoypadUp:
		m.joypadDpad = bit.Clear(2, m.joypadDpad)
	case JoypadDown:
		m.joypadDpad = bit.Clear(3, m.joypadDpad)
	case JoypadA:
		m.joypadButtons = bit.Clear(0, m.joypadButtons)
	case JoypadB:
		m.joypadButtons = bit.Clear(1, m.joypadButtons)
	case JoypadSelect:
		m.joypadButtons = bit.Clear(2, m.joypadButtons)
	case JoypadStart:
		m.joypadButtons = bit.Clear(3, m.joypadButtons)
	}

	if (oldButtons & ^m.joypadButtons)|(oldDpad & ^m.joypadDpad) != 0 {
		m.RequestInterrupt(addr.JoypadInterrupt)
	}

	m.updateJoypadRegister()
}

// HandleKeyRelease marks a key as released.
func (m *MMU) HandleKeyRelease(key JoypadKey) {
	switch key {
	case JoypadRight:
		m.joypadDpad = bit.Set(0, m.joypadDpad)
	case JoypadLeft:
		m.joypadDpad = bit.Set(1, m.joypadDpad)
	case JoypadUp:
		m.joypadDpad = bit.Set(2, m.joypadDpad)
	case JoypadDown:
		m.joypadDpad = bit.Set(3, m.joypadDpad)
	case JoypadA:
		m.joypadButtons = bit.Set(0, m.joypadButtons)
	case JoypadB:
		m.joypadButtons = bit.Set(1, m.joypadButtons)
	case JoypadSelect:
		m.joypadButtons = bit.Set(2, m.joypadButtons)
	case JoypadStart:
		m.joypadButtons = bit.Set(3, m.joypadButtons)
	}

	m.updateJoypadRegister()
}
